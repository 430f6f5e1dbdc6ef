package auth

// Role is a permission tier within a tenant. The three roles form a
// strict hierarchy: agent < admin < owner.
type Role string

const (
	// RoleAgent can work tickets but not manage the tenant.
	RoleAgent Role = "agent"

	// RoleAdmin can manage tenant settings and members.
	RoleAdmin Role = "admin"

	// RoleOwner holds full control, including billing.
	RoleOwner Role = "owner"
)

// roleRank maps each known role to its position in the hierarchy.
// Unknown roles are absent and rank below agent.
var roleRank = map[Role]int{
	RoleAgent: 1,
	RoleAdmin: 2,
	RoleOwner: 3,
}

// AtLeast reports whether r ranks at or above min. An unrecognized role
// value ranks below every known role and never satisfies a minimum.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && roleRank[r] > 0
}

// OneOf reports whether r is a member of the allowed set. Membership is
// exact; the hierarchy does not apply. Unrecognized roles match nothing.
func (r Role) OneOf(allowed ...Role) bool {
	if _, known := roleRank[r]; !known {
		return false
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
