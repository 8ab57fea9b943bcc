// Package remoteconfig fetches version.json/version.txt content from a
// GitHub-hosted repository at a ref, for the CLI's --remote-config flag (spec.md
// §4.4's configuration resolver accepts any resolver.FileSource; this one
// reads over the network instead of a local working tree or commit tree).
package remoteconfig

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// ClientConfig configures authentication and target location for a Client.
type ClientConfig struct {
	// Token is a GitHub personal access token. Falls back to GITHUB_TOKEN.
	Token string

	// AppID is a GitHub App ID for app authentication. Falls back to
	// GH_APP_ID.
	AppID int64
	// AppKeyPath is a GitHub App private key PEM file path. Falls back to
	// GH_APP_PRIVATE_KEY.
	AppKeyPath string

	// BaseURL is a custom API base URL for GitHub Enterprise. Falls back
	// to GITHUB_API_URL.
	BaseURL string

	Owner string
	Repo  string
	// Ref is the branch, tag, or commit SHA to read at. Empty means the
	// repository's default branch.
	Ref string
	// Root is the resolver's working-tree-root path; ReadVersionFile trims
	// it from dir the same way gitcontext.CommitFileSource trims a commit
	// tree's path, since the resolver's directory climb operates on
	// absolute local paths regardless of where the file actually lives.
	Root string
}

// Client reads configuration file content out of one GitHub repository at a
// fixed ref.
type Client struct {
	api   *gh.Client
	owner string
	repo  string
	ref   string
	root  string
}

// NewClient creates an authenticated Client. Auth resolution order: Token →
// GITHUB_TOKEN env → App credentials → error.
func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := resolveString(cfg.BaseURL, "GITHUB_API_URL")

	token := resolveString(cfg.Token, "GITHUB_TOKEN")
	if token != "" {
		api, err := newTokenClient(token, baseURL)
		if err != nil {
			return nil, err
		}
		return &Client{api: api, owner: cfg.Owner, repo: cfg.Repo, ref: cfg.Ref, root: cfg.Root}, nil
	}

	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}
	appKey := resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY")

	if appID != 0 && appKey != "" {
		api, err := newAppClient(appID, appKey, cfg.Owner, baseURL)
		if err != nil {
			return nil, err
		}
		return &Client{api: api, owner: cfg.Owner, repo: cfg.Repo, ref: cfg.Ref, root: cfg.Root}, nil
	}

	return nil, errors.New("remoteconfig: no GitHub authentication provided: set GITHUB_TOKEN, use --token, or provide --github-app-id and --github-app-key")
}

func newTokenClient(token, baseURL string) (*gh.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	if baseURL != "" {
		return gh.NewClient(httpClient).WithEnterpriseURLs(baseURL, baseURL)
	}
	return gh.NewClient(httpClient), nil
}

func newAppClient(appID int64, keyPath, owner, baseURL string) (*gh.Client, error) {
	appTransport, err := ghinstallation.NewAppsTransportKeyFromFile(http.DefaultTransport, appID, keyPath)
	if err != nil {
		return nil, fmt.Errorf("remoteconfig: creating GitHub App transport: %w", err)
	}
	if baseURL != "" {
		appTransport.BaseURL = baseURL
	}

	appClient := gh.NewClient(&http.Client{Transport: appTransport})
	if baseURL != "" {
		appClient, err = appClient.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("remoteconfig: setting enterprise URL: %w", err)
		}
	}

	installationID, err := findInstallation(appClient, owner)
	if err != nil {
		return nil, err
	}

	installTransport, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, keyPath)
	if err != nil {
		return nil, fmt.Errorf("remoteconfig: creating installation transport: %w", err)
	}
	if baseURL != "" {
		installTransport.BaseURL = baseURL
	}

	client := gh.NewClient(&http.Client{Transport: installTransport})
	if baseURL != "" {
		return client.WithEnterpriseURLs(baseURL, baseURL)
	}
	return client, nil
}

func findInstallation(client *gh.Client, owner string) (int64, error) {
	ctx := context.Background()
	opts := &gh.ListOptions{PerPage: 100}

	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("remoteconfig: listing GitHub App installations: %w", err)
		}
		for _, inst := range installations {
			if inst.GetAccount().GetLogin() == owner {
				return inst.GetID(), nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return 0, fmt.Errorf("remoteconfig: no GitHub App installation found for owner %q", owner)
}

// ReadVersionFile implements resolver.FileSource: it fetches dir/name from
// the repository at c.ref, returning (nil, false, nil) on a 404 so the
// resolver's upward climb can continue to dir's parent.
func (c *Client) ReadVersionFile(dir, name string) ([]byte, bool, error) {
	repoRelativeDir := strings.TrimPrefix(dir, c.root)
	repoRelativeDir = strings.Trim(repoRelativeDir, "/\\")

	filePath := name
	if repoRelativeDir != "" {
		filePath = path.Join(repoRelativeDir, name)
	}

	opts := &gh.RepositoryContentGetOptions{}
	if c.ref != "" {
		opts.Ref = c.ref
	}

	content, _, resp, err := c.api.Repositories.GetContents(context.Background(), c.owner, c.repo, filePath, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("remoteconfig: fetching %s: %w", filePath, err)
	}
	if content == nil {
		return nil, false, nil
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, false, fmt.Errorf("remoteconfig: decoding %s: %w", filePath, err)
	}
	return []byte(decoded), true, nil
}

func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}
