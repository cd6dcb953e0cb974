package services

import (
	"github.com/alimgiray/gitaudit/internal/models"
)

// IdentityResolver maps raw author emails to ledger identities, folding
// merged emails into their target.
type IdentityResolver struct {
	merges map[string]string
}

func NewIdentityResolver(merges []*models.EmailMerge) *IdentityResolver {
	resolver := &IdentityResolver{merges: make(map[string]string, len(merges))}
	for _, merge := range merges {
		source := models.NormalizeIdentity(merge.SourceEmail)
		target := models.NormalizeIdentity(merge.TargetEmail)
		if source == "" || target == "" || source == target {
			continue
		}
		resolver.merges[source] = target
	}
	return resolver
}

// Resolve normalizes email and follows merges to the final target.
// Cyclic merge chains stop at the first repeated identity.
func (r *IdentityResolver) Resolve(email string) string {
	identity := models.NormalizeIdentity(email)
	if r == nil || len(r.merges) == 0 {
		return identity
	}

	seen := map[string]struct{}{identity: {}}
	for {
		target, ok := r.merges[identity]
		if !ok {
			return identity
		}
		if _, loop := seen[target]; loop {
			return identity
		}
		seen[target] = struct{}{}
		identity = target
	}
}

// MergedEmails returns a copy of the source -> target map
func (r *IdentityResolver) MergedEmails() map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}
	for source, target := range r.merges {
		out[source] = target
	}
	return out
}
