package packager

import "fmt"

// Profile selects which subset of the runtime files is packaged.
type Profile int

const (
	// ProfileFull packages common and OS assets, scaffolds collections and
	// places the executable.
	ProfileFull Profile = iota
	// ProfileCore places only the executable.
	ProfileCore
	// ProfileEngine is an alias of core kept for build-pipeline compatibility.
	ProfileEngine
	// ProfileLayout packages only the layouts subtree.
	ProfileLayout
	// ProfileNone creates nothing.
	ProfileNone
)

// ProfileNames lists the accepted --build values in declaration order.
var ProfileNames = []string{"full", "core", "engine", "layout", "none"}

// ParseProfile converts a --build value into a Profile.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "full":
		return ProfileFull, nil
	case "core":
		return ProfileCore, nil
	case "engine":
		return ProfileEngine, nil
	case "layout":
		return ProfileLayout, nil
	case "none":
		return ProfileNone, nil
	default:
		return 0, fmt.Errorf("unknown build profile %q (expected full, core, engine, layout or none)", s)
	}
}

func (p Profile) String() string {
	switch p {
	case ProfileFull:
		return "full"
	case ProfileCore:
		return "core"
	case ProfileEngine:
		return "engine"
	case ProfileLayout:
		return "layout"
	case ProfileNone:
		return "none"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// PlacesExecutable reports whether the profile copies the compiled
// executable into the output tree.
func (p Profile) PlacesExecutable() bool {
	return p == ProfileFull || p == ProfileCore || p == ProfileEngine
}
