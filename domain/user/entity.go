package user

// Role conditions what shared screens such as Profile and Payments show.
type Role string

const (
	Renter Role = "RENTER"
	Owner  Role = "OWNER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == Renter || r == Owner
}

// Toggle returns the other role.
func (r Role) Toggle() Role {
	if r == Owner {
		return Renter
	}
	return Owner
}

// User is the signed-in account.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// Current is the mocked signed-in user. Listings with OwnerID equal to Current.ID are "mine".
var Current = User{
	ID:       "me",
	Name:     "John Doe",
	Role:     Renter,
	Avatar:   "https://picsum.photos/100/100?random=user",
	Email:    "john@example.com",
	Verified: true,
}
