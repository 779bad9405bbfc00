package domain

// Provider identifies how an account authenticates
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
	ProviderKakao  Provider = "kakao"
	ProviderNaver  Provider = "naver"
)

// Role is the account capability level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a platform account. Password is empty for social accounts.
type User struct {
	Base
	Email       string   `json:"email" db:"email"`
	Password    string   `json:"-" db:"password"`
	Username    string   `json:"username" db:"username"`
	ProfileImgs []string `json:"profile_imgs,omitempty" db:"profile_imgs"`
	Provider    Provider `json:"provider" db:"provider"`
	Role        Role     `json:"role" db:"role"`

	Profile *Profile `json:"profile,omitempty" db:"-"`
	Term    *Term    `json:"term,omitempty" db:"-"`
}

// IsLocal reports whether the account signed up with email/password
func (u *User) IsLocal() bool {
	return u.Provider == ProviderLocal
}
