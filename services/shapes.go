package services

import "net/http"

// Shape names the request/response representation used for an action.
type Shape string

const (
	ShapeRead          Shape = "read"
	ShapeCreate        Shape = "create"
	ShapeEdit          Shape = "edit"
	ShapeMember        Shape = "member"
	ShapeCaptainMember Shape = "captain_member"
)

// JoinableShapeFor picks the application/invitation shape for an HTTP method.
func JoinableShapeFor(method string) Shape {
	switch method {
	case http.MethodPost:
		return ShapeCreate
	case http.MethodPut, http.MethodPatch:
		return ShapeEdit
	default:
		return ShapeRead
	}
}

// MembershipShapeFor picks the membership shape. Only the captain of the
// membership's team editing it gets the shape with a writable position.
func MembershipShapeFor(method string, actorIsCaptain bool) Shape {
	if actorIsCaptain && (method == http.MethodPut || method == http.MethodPatch) {
		return ShapeCaptainMember
	}
	return ShapeMember
}
