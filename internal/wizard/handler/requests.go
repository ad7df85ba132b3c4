package handler

import "vetform/internal/wizard/models"

// Step payloads carry text fields only. Document slots are not writable
// through step replacement; uploads go through the documents endpoint.

type basicDetailsRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (r basicDetailsRequest) toModel() models.BasicDetails {
	return models.BasicDetails{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

type qualificationRequest struct {
	DegreeType     string `json:"degree_type"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduation_year"`
}

type certificationRequest struct {
	Name        string `json:"name"`
	IssuingBody string `json:"issuing_body"`
	Date        string `json:"date"`
}

type barRegistrationRequest struct {
	Association    string `json:"association"`
	LicenseNumber  string `json:"license_number"`
	Jurisdiction   string `json:"jurisdiction"`
	CompletionYear string `json:"completion_year"`
}

type professionalDetailsRequest struct {
	Qualification   qualificationRequest   `json:"qualification"`
	Certifications  []certificationRequest `json:"certifications"`
	BarRegistration barRegistrationRequest `json:"bar_registration"`
}

func (r professionalDetailsRequest) toModel() models.ProfessionalDetails {
	details := models.ProfessionalDetails{
		Qualification: models.Qualification{
			DegreeType:     r.Qualification.DegreeType,
			Institution:    r.Qualification.Institution,
			GraduationYear: r.Qualification.GraduationYear,
		},
		BarRegistration: models.BarRegistration{
			Association:    r.BarRegistration.Association,
			LicenseNumber:  r.BarRegistration.LicenseNumber,
			Jurisdiction:   r.BarRegistration.Jurisdiction,
			CompletionYear: r.BarRegistration.CompletionYear,
		},
	}
	for _, cert := range r.Certifications {
		details.Certifications = append(details.Certifications, models.Certification{
			Name:        cert.Name,
			IssuingBody: cert.IssuingBody,
			Date:        cert.Date,
		})
	}
	return details
}

type positionRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type experienceRequest struct {
	Positions []positionRequest `json:"positions"`
}

func (r experienceRequest) toModel() []models.Position {
	positions := make([]models.Position, 0, len(r.Positions))
	for _, p := range r.Positions {
		positions = append(positions, models.Position{
			Title:       p.Title,
			Company:     p.Company,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			Current:     p.Current,
			Description: p.Description,
		})
	}
	return positions
}

type identityRequest struct {
	IDType     string `json:"id_type"`
	IDNumber   string `json:"id_number"`
	ExpiryDate string `json:"expiry_date"`
}

func (r identityRequest) toModel() models.IdentityVerification {
	return models.IdentityVerification{
		IDType:     r.IDType,
		IDNumber:   r.IDNumber,
		ExpiryDate: r.ExpiryDate,
	}
}
