package admin

// LoginInput is the admin login form.
type LoginInput struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// CreateAdminInput feeds the out-of-band account creation path.
type CreateAdminInput struct {
	Username string `binding:"required,min=3,max=50"`
	Password string `binding:"required,min=8"`
}
