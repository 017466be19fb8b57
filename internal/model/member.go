package model

type MemberRole string

const (
	MemberRoleAdmin     MemberRole = "admin"
	MemberRolePartner   MemberRole = "partner"
	MemberRoleSenior    MemberRole = "senior"
	MemberRoleLawyer    MemberRole = "lawyer"
	MemberRoleAssistant MemberRole = "assistant"
)

// SeniorRoles are the roles notified when a deed has no assignee.
var SeniorRoles = []MemberRole{
	MemberRolePartner,
	MemberRoleSenior,
	MemberRoleAdmin,
}
