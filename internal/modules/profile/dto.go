package profile

type UpdateStudentProfileRequest struct {
	University   *string   `json:"university"`
	StudentCard  *string   `json:"student_card"`
	DocumentURLs *[]string `json:"document_urls"`
}

type ProfileResponse struct {
	User     any `json:"user"`
	Student  any `json:"student,omitempty"`
	Landlord any `json:"landlord,omitempty"`
}
