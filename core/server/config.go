package server

// Config holds configuration for the HTTP server and its session
// accounts.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ReadUser is the username of the read-only account.
	ReadUser string `mapstructure:"read_user" default:"consulta"`
	// ReadPass is the password of the read-only account.
	ReadPass string `mapstructure:"read_pass" default:"consulta123"`
	// WriteUser is the username of the account allowed to mark rows.
	WriteUser string `mapstructure:"write_user" default:"gestion"`
	// WritePass is the password of the write account.
	WritePass string `mapstructure:"write_pass" default:"gestion123"`
	// SignupURL is the external link returned alongside a proposed
	// credential so operators can finish the signup.
	SignupURL string `mapstructure:"signup_url" default:""`
	// HeartbeatURL, when set, is self-pinged periodically to keep the
	// instance warm on free-tier hosting.
	HeartbeatURL string `mapstructure:"heartbeat_url" default:""`
	// HeartbeatIntervalSeconds is the self-ping period. <= 0 disables.
	HeartbeatIntervalSeconds float64 `mapstructure:"heartbeat_interval_seconds" default:"240"`
}

// Roles assignable to a session.
const (
	RoleRead  = "read"
	RoleWrite = "write"
)

// Account pairs credentials with the role they grant.
type Account struct {
	Role     string
	User     string
	Password string
}

// Accounts returns the accounts that can log in. An account with a
// blank username or password is left out entirely.
func (c Config) Accounts() []Account {
	var accounts []Account
	if c.ReadUser != "" && c.ReadPass != "" {
		accounts = append(accounts, Account{Role: RoleRead, User: c.ReadUser, Password: c.ReadPass})
	}
	if c.WriteUser != "" && c.WritePass != "" {
		accounts = append(accounts, Account{Role: RoleWrite, User: c.WriteUser, Password: c.WritePass})
	}
	return accounts
}

// Authenticate returns the role for the given credentials, or "" when
// they match no account.
func (c Config) Authenticate(user, password string) string {
	for _, a := range c.Accounts() {
		if user == a.User && password == a.Password {
			return a.Role
		}
	}
	return ""
}
