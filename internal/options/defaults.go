package options

// Defaults returns a VersionOptions with every optional field populated
// from its documented default (spec.md §3). Version is intentionally left
// nil: it has no default, it is required at the root of inheritance.
func Defaults() *VersionOptions {
	return &VersionOptions{
		VersionHeightOffset:             int64Ptr(0),
		SemVer1NumericIdentifierPadding: intPtr(4),
		GitCommitIDShortFixedLength:     intPtr(10),
		GitCommitIDShortAutoMinimum:     intPtr(0),
		GitCommitIDPrefix:               stringPtr("g"),
		NuGetPackageVersion: &NuGetPackageVersionOptions{
			SemVer: nuGetSemVerPtr(NuGetSemVer1),
		},
		PublicReleaseRefSpec: stringSlicePtr(nil),
		CloudBuild: &CloudBuildOptions{
			SetAllVariables:     boolPtr(false),
			SetVersionVariables: boolPtr(true),
			BuildNumber: &BuildNumberOptions{
				Enabled: boolPtr(false),
				IncludeCommitID: &IncludeCommitIDOptions{
					When:  commitIDWhenPtr(CommitIDWhenNonPublicReleaseOnly),
					Where: commitIDWherePtr(CommitIDWhereFourthVersionComponent),
				},
			},
		},
		Release: &ReleaseOptions{
			BranchName:       stringPtr("v{version}"),
			VersionIncrement: versionIncrementPtr(VersionIncrementMinor),
			FirstUnstableTag: stringPtr("alpha"),
		},
		PathFilters: stringSlicePtr(nil),
		Inherit:     boolPtr(false),
	}
}

func stringPtr(s string) *string          { return &s }
func intPtr(n int) *int                   { return &n }
func int64Ptr(n int64) *int64             { return &n }
func boolPtr(b bool) *bool                { return &b }
func stringSlicePtr(ss []string) *[]string { return &ss }

func nuGetSemVerPtr(v NuGetSemVerVersion) *NuGetSemVerVersion { return &v }
func commitIDWhenPtr(v IncludeCommitIDWhen) *IncludeCommitIDWhen { return &v }
func commitIDWherePtr(v IncludeCommitIDWhere) *IncludeCommitIDWhere { return &v }
func versionIncrementPtr(v VersionIncrement) *VersionIncrement { return &v }
