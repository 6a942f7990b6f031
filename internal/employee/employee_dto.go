package employee

type CreateEmployeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	// "number" admits digits only; "numeric" would let signs and a
	// decimal point through.
	ContactNumber string `json:"contact_number" binding:"required,len=10,number"`
	DateOfBirth   string `json:"date_of_birth" binding:"required"`
	DateOfJoining string `json:"date_of_joining" binding:"required"`
}

type ListEmployeesQuery struct {
	Page   int
	Limit  int
	Search string
}

type EmployeeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number"`
	DateOfBirth   string `json:"date_of_birth"`
	DateOfJoining string `json:"date_of_joining"`
	EmployeeCode  string `json:"employee_code"`
	CreatedAt     string `json:"created_at"`
}

// EmployeeOption is the slim shape used to populate selection lists.
type EmployeeOption struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
}

// OneTimeCredentials carries the generated password exactly once, in the
// creation response. It is never persisted in plain text or published.
type OneTimeCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateEmployeeResponse struct {
	Employee    EmployeeResponse   `json:"employee"`
	Credentials OneTimeCredentials `json:"credentials"`
}
