package group

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=255"`
	MemberIDs []string `json:"member_ids"`
}

// UpdateGroupRequest represents the request to update a group. Members,
// when present, replace the full member list.
type UpdateGroupRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	MemberIDs []string `json:"member_ids,omitempty"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
	CreatedAt string   `json:"created_at"`
}

// ToResponse converts a Group to a GroupResponse
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		MemberIDs: g.MemberIDs,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
