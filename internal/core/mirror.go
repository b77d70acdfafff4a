package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const probeTimeout = 5 * time.Second

// TemplateHosts are the hosts probed when choosing where to clone the
// project template from.
var TemplateHosts = []string{
	"https://github.com",
	"https://gitee.com",
	"https://github.com.cnpmjs.org",
}

const (
	githubTemplateURL = "https://github.com/ant-design/ant-design-pro.git"
	giteeTemplateURL  = "https://gitee.com/ant-design/ant-design-pro.git"
)

// HostProber picks the quickest reachable host out of a candidate list.
type HostProber struct {
	logger     *zerolog.Logger
	httpClient *http.Client
}

// NewHostProber creates a prober with a short per-request timeout.
func NewHostProber(logger *zerolog.Logger) *HostProber {
	return &HostProber{
		logger:     logger,
		httpClient: &http.Client{Timeout: probeTimeout},
	}
}

// Fastest probes every candidate URL at once and returns the first one that
// answers with a non-server-error status.
func (p *HostProber) Fastest(ctx context.Context, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", errors.New("no hosts to probe")
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	type result struct {
		url string
		err error
	}
	results := make(chan result, len(candidates))
	for _, c := range candidates {
		go func(u string) {
			results <- result{url: u, err: p.probe(ctx, u)}
		}(c)
	}

	var lastErr error
	for range candidates {
		r := <-results
		if r.err == nil {
			p.logger.Debug().Msgf("Fastest host is %s", r.url)
			return r.url, nil
		}
		p.logger.Debug().Err(r.err).Msgf("Probe of %s failed", r.url)
		lastErr = r.err
	}
	return "", fmt.Errorf("no reachable host: %w", lastErr)
}

func (p *HostProber) probe(ctx context.Context, u string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "procreate")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("status %s", resp.Status)
	}
	return nil
}

// TemplateCloneURL returns the template clone URL served by the mirror
// fastest, as returned by Fastest over TemplateHosts.
func TemplateCloneURL(fastest string) string {
	host := fastest
	if u, err := url.Parse(fastest); err == nil && u.Host != "" {
		host = u.Host
	}
	switch host {
	case "gitee.com", "github.com.cnpmjs.org":
		return giteeTemplateURL
	default:
		return githubTemplateURL
	}
}
