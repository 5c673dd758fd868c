package releases

import (
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	modsemver "golang.org/x/mod/semver"

	"github.com/meridiandb/harness/version"
)

// hashLength is the number of commit hash characters the product embeds in
// its version output.
const hashLength = 9

// List is the ordered inventory of released product versions, oldest first.
// Prereleases and dev builds are not releases and are excluded.
type List struct {
	versions []version.Version
}

// FromRepository reads the release inventory from the tags of the product
// checkout at path.
func FromRepository(path string) (List, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return List{}, fmt.Errorf("failed to open repository: %w", err)
	}

	tags, err := repo.Tags()
	if err != nil {
		return List{}, fmt.Errorf("failed to list tags: %w", err)
	}

	var names []string
	if err := tags.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	}); err != nil {
		return List{}, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return FromTags(names), nil
}

// FromTags builds the release inventory from raw tag names, dropping
// anything that is not a released version tag.
func FromTags(tags []string) List {
	valid := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !modsemver.IsValid(tag) {
			continue
		}
		valid = append(valid, tag)
	}
	modsemver.Sort(valid)

	versions := make([]version.Version, 0, len(valid))
	for _, tag := range valid {
		v, ok := version.TryParse(tag)
		if !ok {
			continue
		}
		if v.Prerelease() != "" {
			continue
		}
		versions = append(versions, v)
	}

	return List{versions: versions}
}

// All returns every released version, oldest first.
func (l List) All() []version.Version {
	return slices.Clone(l.versions)
}

// Latest returns the most recent released version.
func (l List) Latest() (version.Version, bool) {
	if len(l.versions) == 0 {
		return version.Version{}, false
	}
	return l.versions[len(l.versions)-1], true
}

// Previous returns the most recent released version strictly below v. Used
// by upgrade tests to find the release a dev build upgrades from.
func (l List) Previous(v version.Version) (version.Version, bool) {
	for i := len(l.versions) - 1; i >= 0; i-- {
		if l.versions[i].LessThan(v) {
			return l.versions[i], true
		}
	}
	return version.Version{}, false
}

// HeadHash returns the abbreviated commit hash of HEAD in the product
// checkout, as the product embeds it in dev build version strings.
func HeadHash(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	return head.Hash().String()[:hashLength], nil
}
