package user

// User is the owner identity every entry and summary is scoped to. Uid is the
// external identifier supplied by the authenticating proxy; Id is the internal
// database key.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
}
