package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// CloneErrorKind classifies why a template clone failed.
type CloneErrorKind int

const (
	// CloneErrUnknown is an unclassified clone failure.
	CloneErrUnknown CloneErrorKind = iota
	// CloneErrAuth means authentication failed (credentials missing or invalid).
	CloneErrAuth
	// CloneErrRepoNotFound means the repository URL is wrong or the user has no access.
	CloneErrRepoNotFound
	// CloneErrBranchNotFound means the requested template branch does not exist.
	CloneErrBranchNotFound
	// CloneErrNetwork means the host could not be reached (DNS, connectivity).
	CloneErrNetwork
	// CloneErrSSHKey means the SSH key was rejected or not found.
	CloneErrSSHKey
	// CloneErrHostKey means SSH host key verification failed.
	CloneErrHostKey
	// CloneErrTimeout means the clone operation timed out.
	CloneErrTimeout
)

// String returns a human-readable label for the error kind.
func (k CloneErrorKind) String() string {
	switch k {
	case CloneErrAuth:
		return "Authentication Required"
	case CloneErrRepoNotFound:
		return "Repository Not Found"
	case CloneErrBranchNotFound:
		return "Branch Not Found"
	case CloneErrNetwork:
		return "Network Error"
	case CloneErrSSHKey:
		return "SSH Key Error"
	case CloneErrHostKey:
		return "SSH Host Key Error"
	case CloneErrTimeout:
		return "Timeout"
	default:
		return "Unknown Error"
	}
}

// CloneError is a structured error returned when cloning a template fails.
// It wraps the underlying error with classification and actionable hints.
type CloneError struct {
	Kind     CloneErrorKind
	Protocol string   // "https" or "ssh"
	URL      string   // The clone URL that was attempted
	Branch   string   // The branch that was requested, empty for the default
	Command  string   // Equivalent git command (for display)
	Err      error    // Underlying clone error
	Hints    []string // Actionable suggestions for the user
}

// Error implements the error interface.
func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone failed (%s): %v", e.Kind, e.Err)
}

func (e *CloneError) Unwrap() error { return e.Err }

// IsCloneError checks whether an error is a *CloneError and returns it.
func IsCloneError(err error) (*CloneError, bool) {
	var ce *CloneError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ClassifyCloneError examines a clone failure and returns a structured CloneError.
func ClassifyCloneError(cloneURL, branch string, err error) *CloneError {
	protocol := detectProtocol(cloneURL)
	kind := classifyCloneErr(err)

	return &CloneError{
		Kind:     kind,
		Protocol: protocol,
		URL:      cloneURL,
		Branch:   branch,
		Command:  FormatCommand(cloneURL, branch),
		Err:      err,
		Hints:    hintsForError(kind, protocol, cloneURL),
	}
}

// detectProtocol returns "ssh" or "https" based on the clone URL format.
func detectProtocol(url string) string {
	if strings.HasPrefix(url, "git@") || strings.HasPrefix(url, "ssh://") {
		return "ssh"
	}
	return "https"
}

// classifyCloneErr maps go-git sentinel errors to a kind, falling back to
// matching the error text.
func classifyCloneErr(err error) CloneErrorKind {
	var refSpecErr git.NoMatchingRefSpecError
	switch {
	case err == nil:
		return CloneErrUnknown
	case errors.Is(err, context.DeadlineExceeded):
		return CloneErrTimeout
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed):
		return CloneErrAuth
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return CloneErrRepoNotFound
	case errors.Is(err, plumbing.ErrReferenceNotFound), errors.As(err, &refSpecErr):
		return CloneErrBranchNotFound
	}
	return classifyOutput(err.Error())
}

// classifyOutput pattern-matches error text to determine the error kind.
func classifyOutput(output string) CloneErrorKind {
	lower := strings.ToLower(output)

	if strings.Contains(lower, "timed out") || strings.Contains(lower, "deadline exceeded") {
		return CloneErrTimeout
	}

	// SSH key errors.
	if strings.Contains(lower, "permission denied (publickey)") ||
		strings.Contains(lower, "unable to authenticate") ||
		strings.Contains(lower, "ssh: handshake failed") ||
		strings.Contains(lower, "no such identity") ||
		strings.Contains(lower, "ssh_auth_sock") {
		return CloneErrSSHKey
	}

	// SSH host key verification.
	if strings.Contains(lower, "knownhosts") ||
		strings.Contains(lower, "known_hosts") ||
		strings.Contains(lower, "host key") {
		return CloneErrHostKey
	}

	// HTTPS auth errors.
	if strings.Contains(lower, "authentication required") ||
		strings.Contains(lower, "authorization failed") ||
		strings.Contains(lower, "invalid credentials") ||
		strings.Contains(lower, "401") ||
		strings.Contains(lower, "403") {
		return CloneErrAuth
	}

	if strings.Contains(lower, "couldn't find remote ref") ||
		strings.Contains(lower, "reference not found") {
		return CloneErrBranchNotFound
	}

	if strings.Contains(lower, "repository not found") ||
		strings.Contains(lower, "not found") {
		return CloneErrRepoNotFound
	}

	// Network errors.
	if strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "network is unreachable") ||
		strings.Contains(lower, "no route to host") {
		return CloneErrNetwork
	}

	return CloneErrUnknown
}

// hintsForError returns actionable suggestions based on the error kind and protocol.
func hintsForError(kind CloneErrorKind, protocol, cloneURL string) []string {
	switch kind {
	case CloneErrAuth:
		hints := []string{
			"The template repository is public; check for a proxy or a stale credential helper",
			"Set a template you can access: `procreate config set templateRepo <url>`",
		}
		if protocol == "https" {
			if sshURL := httpsToSSH(cloneURL); sshURL != "" {
				hints = append(hints, fmt.Sprintf("Try SSH instead: procreate create --template %s", sshURL))
			}
		}
		return hints

	case CloneErrSSHKey:
		hints := []string{
			"Ensure your SSH key is loaded: `ssh-add -l`",
			"If no keys are listed, add one: `ssh-add ~/.ssh/id_ed25519`",
		}
		if protocol == "ssh" {
			if httpsURL := sshToHTTPS(cloneURL); httpsURL != "" {
				hints = append(hints, fmt.Sprintf("Try HTTPS instead: procreate create --template %s", httpsURL))
			}
		}
		return hints

	case CloneErrHostKey:
		return []string{
			"The SSH host key is not trusted. Run: `ssh-keyscan github.com >> ~/.ssh/known_hosts`",
		}

	case CloneErrRepoNotFound:
		return []string{
			"Verify the template URL is correct",
			"Check `procreate config get templateRepo` for a stale override",
		}

	case CloneErrBranchNotFound:
		return []string{
			"The template has no branch for the selected version",
			"Pick another version with --version, or drop --all-blocks",
		}

	case CloneErrNetwork:
		return []string{
			"Check your internet connection",
			"If github.com is blocked, point templateRepo at a mirror such as gitee.com",
		}

	case CloneErrTimeout:
		return []string{
			"The clone did not finish in time",
			"Try again, or use a closer mirror via `procreate config set templateRepo <url>`",
		}

	default:
		return []string{
			"Check the error message above for details",
			"Try cloning manually to diagnose the issue",
		}
	}
}

// httpsToSSH converts an HTTPS GitHub/Gitee URL to SSH format.
// Returns empty string if conversion is not possible.
func httpsToSSH(url string) string {
	for _, host := range []string{"github.com", "gitee.com"} {
		prefix := "https://" + host + "/"
		if strings.HasPrefix(url, prefix) {
			path := strings.TrimPrefix(url, prefix)
			if !strings.HasSuffix(path, ".git") {
				path += ".git"
			}
			return "git@" + host + ":" + path
		}
	}
	return ""
}

// sshToHTTPS converts an SSH git URL to HTTPS format.
// Returns empty string if conversion is not possible.
func sshToHTTPS(url string) string {
	if !strings.HasPrefix(url, "git@") {
		return ""
	}
	parts := strings.SplitN(strings.TrimPrefix(url, "git@"), ":", 2)
	if len(parts) != 2 {
		return ""
	}
	switch parts[0] {
	case "github.com", "gitee.com":
		return "https://" + parts[0] + "/" + parts[1]
	default:
		return ""
	}
}

// FormatCommand builds the display string for the equivalent git clone command.
func FormatCommand(url, branch string) string {
	args := []string{"git", "clone", "--depth", "1"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url)
	return strings.Join(args, " ")
}
