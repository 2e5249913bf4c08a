package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Job board
// ============================================================================

const (
	ScopeAll = "*"

	// Job scopes
	ScopeJobsAll    = "jobs:*"
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsDelete = "jobs:delete"
	ScopeJobsShare  = "jobs:share" // Generate share images

	// Company scopes
	ScopeCompaniesAll   = "companies:*"
	ScopeCompaniesWrite = "companies:write"

	// Taxonomy scopes (domains, subdomains, skills)
	ScopeTaxonomyAll   = "taxonomy:*"
	ScopeTaxonomyWrite = "taxonomy:write"

	// Uploads
	ScopeUploadsWrite = "uploads:write"

	// Signed-in user scopes
	ScopeApplicationsOwn = "applications:own"
	ScopeSavedJobsOwn    = "saved_jobs:own"
)

// DomainScopeGroups maps a role claim to the scopes it grants
var DomainScopeGroups = map[string][]string{
	"admin": {
		ScopeAll,
	},
	"editor": {
		ScopeJobsAll,
		ScopeCompaniesAll,
		ScopeTaxonomyAll,
		ScopeUploadsWrite,
	},
	"user": {
		ScopeJobsRead,
		ScopeApplicationsOwn,
		ScopeSavedJobsOwn,
	},
}

// ScopesForRole returns the scopes of role, falling back to "user"
func ScopesForRole(role string) []string {
	if scopes, ok := DomainScopeGroups[role]; ok {
		return scopes
	}
	return DomainScopeGroups["user"]
}

// ScopeMatches reports whether granted covers required, honoring "*" and
// "<resource>:*" wildcards
func ScopeMatches(granted, required string) bool {
	if granted == ScopeAll || granted == required {
		return true
	}
	n := len(granted)
	if n > 2 && granted[n-2:] == ":*" {
		prefix := granted[:n-1]
		return len(required) > len(prefix) && required[:len(prefix)] == prefix
	}
	return false
}
