// Package validate holds the per-step validators. Each validator is a pure
// function over a step's sub-record returning a field-path keyed error map;
// an empty map means the step may be left. Validation never mutates the
// record under test.
//
// Field paths are dotted and use the wire names the intake UI highlights
// controls by (firstName, qualifications.degreeType, positions.0.title, ...).
package validate

import (
	"fmt"
	"regexp"

	"vetform/internal/wizard/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Step dispatches to the validator for the given step. The terminal
// verification-status step is display-only and always passes, as does any
// unknown step (the controller rejects those before validation).
func Step(id models.StepID, form models.FormRecord) models.ValidationErrors {
	switch id {
	case models.StepBasicDetails:
		return BasicDetails(form.BasicDetails)
	case models.StepProfessionalDetails:
		return ProfessionalDetails(form.Professional)
	case models.StepExperience:
		return Experience(form.Positions)
	case models.StepIdentityVerification:
		return IdentityVerification(form.Identity)
	default:
		return models.ValidationErrors{}
	}
}

// BasicDetails requires a first name, last name and a well-formed email.
func BasicDetails(b models.BasicDetails) models.ValidationErrors {
	errs := models.ValidationErrors{}
	if b.FirstName == "" {
		errs.Add("firstName", "First name is required")
	}
	if b.LastName == "" {
		errs.Add("lastName", "Last name is required")
	}
	if b.Email == "" {
		errs.Add("email", "Email is required")
	} else if !emailPattern.MatchString(b.Email) {
		errs.Add("email", "Invalid email address")
	}
	return errs
}

// ProfessionalDetails requires a complete qualification, at least one complete
// certification, and a complete bar registration. Every document check needs a
// live file handle: a preview-only slot restored from a draft does not pass,
// so resuming a draft means re-uploading documents.
func ProfessionalDetails(p models.ProfessionalDetails) models.ValidationErrors {
	errs := models.ValidationErrors{}

	if p.Qualification.DegreeType == "" {
		errs.Add("qualifications.degreeType", "Degree type is required")
	}
	if p.Qualification.Institution == "" {
		errs.Add("qualifications.institution", "Institution is required")
	}
	if p.Qualification.GraduationYear == "" {
		errs.Add("qualifications.graduationYear", "Graduation year is required")
	}
	if !p.Qualification.Document.HasFile() {
		errs.Add("qualifications.document", "Document is required")
	}

	if len(p.Certifications) == 0 {
		errs.Add("certifications", "At least one certification is required")
	}
	for i, cert := range p.Certifications {
		if cert.Name == "" {
			errs.Add(fmt.Sprintf("certifications.%d.name", i), "Certification name is required")
		}
		if cert.IssuingBody == "" {
			errs.Add(fmt.Sprintf("certifications.%d.issuingBody", i), "Issuing body is required")
		}
		if cert.Date == "" {
			errs.Add(fmt.Sprintf("certifications.%d.date", i), "Date is required")
		}
		if !cert.Document.HasFile() {
			errs.Add(fmt.Sprintf("certifications.%d.document", i), "Document is required")
		}
	}

	if p.BarRegistration.Association == "" {
		errs.Add("barRegistration.association", "Association is required")
	}
	if p.BarRegistration.LicenseNumber == "" {
		errs.Add("barRegistration.licenseNumber", "License number is required")
	}
	if p.BarRegistration.Jurisdiction == "" {
		errs.Add("barRegistration.jurisdiction", "Jurisdiction is required")
	}
	if p.BarRegistration.CompletionYear == "" {
		errs.Add("barRegistration.completionYear", "Completion year is required")
	}
	if !p.BarRegistration.Document.HasFile() {
		errs.Add("barRegistration.document", "Document is required")
	}

	return errs
}

// Experience requires at least one position; each needs title, company, start
// date and description. End date is optional and a position marked current may
// still carry one.
func Experience(positions []models.Position) models.ValidationErrors {
	errs := models.ValidationErrors{}
	if len(positions) == 0 {
		errs.Add("positions", "At least one position is required")
		return errs
	}
	for i, pos := range positions {
		if pos.Title == "" {
			errs.Add(fmt.Sprintf("positions.%d.title", i), "Title is required")
		}
		if pos.Company == "" {
			errs.Add(fmt.Sprintf("positions.%d.company", i), "Company is required")
		}
		if pos.StartDate == "" {
			errs.Add(fmt.Sprintf("positions.%d.startDate", i), "Start date is required")
		}
		if pos.Description == "" {
			errs.Add(fmt.Sprintf("positions.%d.description", i), "Description is required")
		}
	}
	return errs
}

// IdentityVerification requires the ID fields and a live document upload.
func IdentityVerification(iv models.IdentityVerification) models.ValidationErrors {
	errs := models.ValidationErrors{}
	if iv.IDType == "" {
		errs.Add("idType", "ID type is required")
	}
	if iv.IDNumber == "" {
		errs.Add("idNumber", "ID number is required")
	}
	if iv.ExpiryDate == "" {
		errs.Add("expiryDate", "Expiry date is required")
	}
	if !iv.Document.HasFile() {
		errs.Add("document", "Document is required")
	}
	return errs
}
