package model

// PosterStatus reports whether a poster code can be used for registration.
type PosterStatus struct {
	Code       string
	Valid      bool
	Registered bool
}

// RegisterParams are the profile fields submitted at registration.
type RegisterParams struct {
	PosterCode  string
	Name        string
	DateOfBirth string
	ZodiacSign  string
	Preferences Preferences
}

// RegisterResult is returned after a successful registration.
type RegisterResult struct {
	User  User
	Token string
}

// PreferencesUpdate holds optional profile changes. Nil fields are left as is.
type PreferencesUpdate struct {
	Name      *string
	Language  *string
	Gender    *string
	Color     *Color
	Interests []string
	Numbers   *Numbers
}

// ReadingRequest asks for a reading on behalf of an authenticated user.
type ReadingRequest struct {
	UserID      string
	ReadingType ReadingType
	// Language overrides the user's preferred language when set.
	Language string
	Inputs   TemplateInputs
}
