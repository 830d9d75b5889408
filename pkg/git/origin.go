package git

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ErrUnparsableOrigin = errors.New("unparsable remote url")

// user@host:path, the scp-like syntax git accepts for ssh remotes.
var scpLike = regexp.MustCompile(`^[A-Za-z0-9._-]+@([^:/]+):(.+)$`)

// ParseOrigin splits a remote url into the forge host and the project path
// without a trailing ".git". Supported are scp-like ssh remotes, ssh:// urls
// and http(s):// urls. The port of an ssh url is dropped since the API is
// served over https.
func ParseOrigin(remoteURL string) (host, path string, err error) {
	raw := strings.TrimSpace(remoteURL)

	if !strings.Contains(raw, "://") {
		m := scpLike.FindStringSubmatch(raw)
		if m == nil {
			return "", "", fmt.Errorf("%w: %q", ErrUnparsableOrigin, remoteURL)
		}
		host, path = m[1], m[2]
	} else {
		u, perr := url.Parse(raw)
		if perr != nil {
			return "", "", fmt.Errorf("%w: %q: %v", ErrUnparsableOrigin, remoteURL, perr)
		}
		switch u.Scheme {
		case "http", "https":
			host = u.Host
		case "ssh", "git+ssh":
			host = u.Hostname()
		default:
			return "", "", fmt.Errorf("%w: unsupported scheme %q", ErrUnparsableOrigin, u.Scheme)
		}
		path = u.Path
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if host == "" || path == "" {
		return "", "", fmt.Errorf("%w: %q", ErrUnparsableOrigin, remoteURL)
	}
	return host, path, nil
}
