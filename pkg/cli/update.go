package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// DefaultRepository is the GitHub owner/name checked by -update.
const DefaultRepository = "Fepozopo/cif"

// releaseSource finds the newest release of a repository. It is satisfied by
// selfupdate in production and replaced in tests.
type releaseSource interface {
	DetectLatest(slug string) (*selfupdate.Release, bool, error)
	UpdateTo(assetURL, exe string) error
}

type githubReleases struct{}

func (githubReleases) DetectLatest(slug string) (*selfupdate.Release, bool, error) {
	return selfupdate.DetectLatest(slug)
}

func (githubReleases) UpdateTo(assetURL, exe string) error {
	return selfupdate.UpdateTo(assetURL, exe)
}

// checkForUpdates compares Version with the latest release of repo and, if
// the user confirms on in, replaces the running executable.
func checkForUpdates(src releaseSource, repo string, in io.Reader, out io.Writer) error {
	current, err := semver.ParseTolerant(Version)
	if err != nil {
		return fmt.Errorf("current version %q: %w", Version, err)
	}
	fmt.Fprintf(out, "Current version: %s\n", current)

	latest, found, err := src.DetectLatest(repo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", repo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	if latest.Version.LTE(current) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", current)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but has no asset for this platform.\n", latest.Version)
		if latest.URL != "" {
			fmt.Fprintf(out, "Download it from %s\n", latest.URL)
		}
		return nil
	}

	answer, err := promptLine(bufio.NewReader(in), out, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil && err != io.EOF {
		return fmt.Errorf("read answer: %w", err)
	}
	if a := strings.ToLower(answer); a != "y" && a != "yes" {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	fmt.Fprintln(out, "Updating...")
	if err := src.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s.\n", latest.Version)
	return nil
}

// promptLine writes prompt and reads one trimmed line.
func promptLine(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := r.ReadString('\n')
	return strings.TrimSpace(line), err
}
