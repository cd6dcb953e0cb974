package models

// AuditScope selects which part of the history is audited. Its rendered
// arguments are passed unchanged to every history traversal.
type AuditScope struct {
	Refs               []string             `json:"refs,omitempty" yaml:"refs"`
	Since              string               `json:"since,omitempty" yaml:"since"`
	Until              string               `json:"until,omitempty" yaml:"until"`
	ExcludedFolders    []*ExcludedFolder    `json:"excluded_folders,omitempty" yaml:"-"`
	ExcludedExtensions []*ExcludedExtension `json:"excluded_extensions,omitempty" yaml:"-"`
	ExcludeMerges      bool                 `json:"exclude_merges" yaml:"exclude_merges"`
	ExtraArgs          []string             `json:"extra_args,omitempty" yaml:"extra_args"`
}

// NewAuditScope returns a scope covering every ref with merges excluded
// from the primary, status and path traversals.
func NewAuditScope() *AuditScope {
	return &AuditScope{ExcludeMerges: true}
}

// Args renders the scope as git log arguments: ref selection, date window,
// extra arguments and finally exclusion pathspecs after "--".
func (s *AuditScope) Args() []string {
	var args []string
	if len(s.Refs) == 0 {
		args = append(args, "--all")
	} else {
		args = append(args, s.Refs...)
	}
	if s.Since != "" {
		args = append(args, "--since="+s.Since)
	}
	if s.Until != "" {
		args = append(args, "--until="+s.Until)
	}
	args = append(args, s.ExtraArgs...)

	var pathspecs []string
	for _, folder := range s.ExcludedFolders {
		if spec := folder.Pathspec(); spec != "" {
			pathspecs = append(pathspecs, spec)
		}
	}
	for _, ext := range s.ExcludedExtensions {
		if spec := ext.Pathspec(); spec != "" {
			pathspecs = append(pathspecs, spec)
		}
	}
	if len(pathspecs) > 0 {
		// a positive pathspec is required for exclusions to apply
		args = append(args, "--", ".")
		args = append(args, pathspecs...)
	}
	return args
}
