// Enum values are stored and serialized as strings so that the database rows
// and the JSON payloads stay readable. Gin's oneof binding validates them.
package model

// Member role on the public site
type MemberRole string

const (
	MemberRoleTeam   MemberRole = "TEAM"
	MemberRoleIntern MemberRole = "INTERN"
)

// Discount kind for training prices
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "PERCENTAGE"
	DiscountFlat       DiscountKind = "FLAT"
)

// Opportunity kind
type OpportunityType string

const (
	OpportunityJob        OpportunityType = "JOB"
	OpportunityInternship OpportunityType = "INTERNSHIP"
)

// Admin platform role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)
