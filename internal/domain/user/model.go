package user

const (
	RolePlayer   = "PLAYER"
	RoleOperator = "OPERATOR"
)

// User is a registered account. Only PLAYER accounts appear in standings.
type User struct {
	ID   string
	Name string
	Role string
}

func (u User) IsPlayer() bool {
	return u.Role == RolePlayer
}
