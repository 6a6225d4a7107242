package menu

// Category identifies one of the mode-dependent composer selectors.
type Category string

const (
	CategoryModel       Category = "model"
	CategoryExpertise   Category = "expertise"
	CategoryAspectRatio Category = "aspectRatio"
)

// Categories returns the dependent selectors in resolution order.
// Resolution always walks them in this order so the outcome is deterministic.
func Categories() []Category {
	return []Category{CategoryModel, CategoryExpertise, CategoryAspectRatio}
}

// State is the composer selection tuple. Mode is always a registered mode
// key after resolution; each category value is either a member of that
// category's allow-list for the mode, or the empty string when the category
// is disabled for the mode. The empty string means "not applicable" and must
// never be treated as a valid selection.
type State struct {
	Mode        string `json:"mode" toml:"mode"`
	Model       string `json:"model" toml:"model"`
	Expertise   string `json:"expertise" toml:"expertise"`
	AspectRatio string `json:"aspectRatio" toml:"aspect_ratio"`
}

// Value returns the selection for the given category.
func (s State) Value(c Category) string {
	switch c {
	case CategoryModel:
		return s.Model
	case CategoryExpertise:
		return s.Expertise
	case CategoryAspectRatio:
		return s.AspectRatio
	}
	return ""
}

func (s *State) SetValue(c Category, v string) {
	switch c {
	case CategoryModel:
		s.Model = v
	case CategoryExpertise:
		s.Expertise = v
	case CategoryAspectRatio:
		s.AspectRatio = v
	}
}

// Resolve produces a fully valid State from the current selections.
//
// An empty requestedMode re-validates the current state against its own mode
// (a refresh): still-valid selections are kept, invalid ones fall back to the
// mode default, then to the category's global default. A non-empty
// requestedMode is an explicit mode switch and re-applies that mode's
// configured defaults even when the previous selection would still validate.
// Switching modes loads a preset rather than carrying stale choices along.
//
// An unrecognized mode degrades to cfg.DefaultMode via a single refresh pass;
// Resolve never fails.
func Resolve(cfg Config, current State, requestedMode string) State {
	mode := current.Mode
	switched := requestedMode != ""
	if switched {
		mode = requestedMode
	}
	ctx, ok := cfg.Contexts[mode]
	if !ok {
		// Unknown or corrupted mode key: restart from the default mode with
		// no override. The default mode is validated at load time, so this
		// recursion is single-level.
		fallback := current
		fallback.Mode = cfg.DefaultMode
		return Resolve(cfg, fallback, "")
	}
	next := State{Mode: mode}
	for _, cat := range Categories() {
		avail := ctx.Availability[cat]
		if !avail.Enabled {
			// Zero value already carries the "not applicable" sentinel.
			continue
		}
		modeDefault, hasModeDefault := ctx.Defaults[cat]
		if switched && hasModeDefault {
			next.SetValue(cat, clampToAllowed(modeDefault, avail.Allowed))
			continue
		}
		if cur := current.Value(cat); containsOption(avail.Allowed, cur) {
			next.SetValue(cat, cur)
			continue
		}
		fallback := modeDefault
		if !hasModeDefault {
			fallback = cfg.Categories[cat].Default
		}
		next.SetValue(cat, clampToAllowed(fallback, avail.Allowed))
	}
	return next
}

// clampToAllowed keeps the validity invariant total even for configs that
// slipped past Validate: a fallback value outside the allow-list snaps to the
// first allowed option.
func clampToAllowed(value string, allowed []string) string {
	if containsOption(allowed, value) {
		return value
	}
	if len(allowed) > 0 {
		return allowed[0]
	}
	return ""
}

func containsOption(allowed []string, value string) bool {
	if value == "" {
		return false
	}
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}
