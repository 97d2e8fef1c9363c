package level

// CollectibleKind tags a pickup's type. It only affects rendering.
type CollectibleKind int

const (
	KindScrewdriver CollectibleKind = iota
	KindWrench
	KindHammer
	KindNut
	KindScrew
)

var collectibleNames = [...]string{
	KindScrewdriver: "screwdriver",
	KindWrench:      "wrench",
	KindHammer:      "hammer",
	KindNut:         "nut",
	KindScrew:       "screw",
}

// String returns the layout name of the kind.
func (k CollectibleKind) String() string {
	if k < 0 || int(k) >= len(collectibleNames) {
		return "unknown"
	}
	return collectibleNames[k]
}

// ParseCollectibleKind maps a layout name to its kind.
func ParseCollectibleKind(name string) (CollectibleKind, bool) {
	for i, n := range collectibleNames {
		if n == name {
			return CollectibleKind(i), true
		}
	}
	return 0, false
}
