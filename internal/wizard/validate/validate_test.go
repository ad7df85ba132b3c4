package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetform/internal/wizard/models"
)

func completeProfessional() models.ProfessionalDetails {
	return models.ProfessionalDetails{
		Qualification: models.Qualification{
			DegreeType:     "JD",
			Institution:    "Columbia Law School",
			GraduationYear: "2015",
			Document:       models.SelectedSlot("upload-q", "degree.pdf", "blob:vetform/q"),
		},
		Certifications: []models.Certification{{
			Name:        "CIPP/E",
			IssuingBody: "IAPP",
			Date:        "2019-06-01",
			Document:    models.SelectedSlot("upload-c0", "cipp.pdf", "blob:vetform/c0"),
		}},
		BarRegistration: models.BarRegistration{
			Association:    "New York State Bar",
			LicenseNumber:  "NY-442871",
			Jurisdiction:   "New York",
			CompletionYear: "2016",
			Document:       models.SelectedSlot("upload-b", "bar.pdf", "blob:vetform/b"),
		},
	}
}

func TestBasicDetails(t *testing.T) {
	t.Run("missing first name yields exactly one error", func(t *testing.T) {
		errs := BasicDetails(models.BasicDetails{FirstName: "", LastName: "Doe", Email: "a@b.com"})
		assert.Equal(t, models.ValidationErrors{"firstName": "First name is required"}, errs)
	})

	t.Run("all fields empty reports each field", func(t *testing.T) {
		errs := BasicDetails(models.BasicDetails{})
		assert.Equal(t, "First name is required", errs["firstName"])
		assert.Equal(t, "Last name is required", errs["lastName"])
		assert.Equal(t, "Email is required", errs["email"])
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		errs := BasicDetails(models.BasicDetails{FirstName: "Jane", LastName: "Doe", Email: "jane@nodot"})
		assert.Equal(t, models.ValidationErrors{"email": "Invalid email address"}, errs)
	})

	t.Run("valid record passes", func(t *testing.T) {
		errs := BasicDetails(models.BasicDetails{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@firm.example.com"})
		assert.Empty(t, errs)
	})
}

func TestProfessionalDetails(t *testing.T) {
	t.Run("complete record passes", func(t *testing.T) {
		assert.Empty(t, ProfessionalDetails(completeProfessional()))
	})

	t.Run("empty certification list rejected", func(t *testing.T) {
		p := completeProfessional()
		p.Certifications = nil
		errs := ProfessionalDetails(p)
		assert.Equal(t, "At least one certification is required", errs["certifications"])
	})

	t.Run("incomplete second certification is path qualified", func(t *testing.T) {
		p := completeProfessional()
		p.Certifications = append(p.Certifications, models.Certification{Name: "CFE"})
		errs := ProfessionalDetails(p)
		assert.Equal(t, "Issuing body is required", errs["certifications.1.issuingBody"])
		assert.Equal(t, "Date is required", errs["certifications.1.date"])
		assert.Equal(t, "Document is required", errs["certifications.1.document"])
		assert.NotContains(t, errs, "certifications.1.name")
		assert.NotContains(t, errs, "certifications.0.name")
	})

	t.Run("restored preview-only document does not satisfy the requirement", func(t *testing.T) {
		p := completeProfessional()
		p.Qualification.Document = models.RestoredSlot("blob:vetform/q")
		errs := ProfessionalDetails(p)
		assert.Equal(t, models.ValidationErrors{"qualifications.document": "Document is required"}, errs)
	})

	t.Run("missing bar registration fields reported", func(t *testing.T) {
		p := completeProfessional()
		p.BarRegistration = models.BarRegistration{Document: models.EmptySlot()}
		errs := ProfessionalDetails(p)
		assert.Equal(t, "Association is required", errs["barRegistration.association"])
		assert.Equal(t, "License number is required", errs["barRegistration.licenseNumber"])
		assert.Equal(t, "Jurisdiction is required", errs["barRegistration.jurisdiction"])
		assert.Equal(t, "Completion year is required", errs["barRegistration.completionYear"])
		assert.Equal(t, "Document is required", errs["barRegistration.document"])
	})
}

func TestExperience(t *testing.T) {
	complete := models.Position{
		Title:       "Associate",
		Company:     "Harvey & Co",
		StartDate:   "2018-09-01",
		Description: "Commercial litigation.",
	}

	t.Run("zero positions rejected", func(t *testing.T) {
		errs := Experience(nil)
		assert.Equal(t, models.ValidationErrors{"positions": "At least one position is required"}, errs)
	})

	t.Run("complete position passes", func(t *testing.T) {
		assert.Empty(t, Experience([]models.Position{complete}))
	})

	t.Run("current position with stray end date still passes", func(t *testing.T) {
		pos := complete
		pos.Current = true
		pos.EndDate = "2024-01-31"
		assert.Empty(t, Experience([]models.Position{pos}))
	})

	t.Run("end date is optional", func(t *testing.T) {
		pos := complete
		pos.EndDate = ""
		assert.Empty(t, Experience([]models.Position{pos}))
	})

	t.Run("missing fields are path qualified per entry", func(t *testing.T) {
		errs := Experience([]models.Position{complete, {}})
		assert.Empty(t, errs["positions.0.title"])
		assert.Equal(t, "Title is required", errs["positions.1.title"])
		assert.Equal(t, "Company is required", errs["positions.1.company"])
		assert.Equal(t, "Start date is required", errs["positions.1.startDate"])
		assert.Equal(t, "Description is required", errs["positions.1.description"])
	})
}

func TestIdentityVerification(t *testing.T) {
	complete := models.IdentityVerification{
		IDType:     "passport",
		IDNumber:   "X1234567",
		ExpiryDate: "2030-05-01",
		Document:   models.SelectedSlot("upload-id", "passport.jpg", "blob:vetform/id"),
	}

	t.Run("complete record passes", func(t *testing.T) {
		assert.Empty(t, IdentityVerification(complete))
	})

	t.Run("each missing field reported", func(t *testing.T) {
		errs := IdentityVerification(models.IdentityVerification{Document: models.EmptySlot()})
		assert.Equal(t, "ID type is required", errs["idType"])
		assert.Equal(t, "ID number is required", errs["idNumber"])
		assert.Equal(t, "Expiry date is required", errs["expiryDate"])
		assert.Equal(t, "Document is required", errs["document"])
	})
}

func TestStep(t *testing.T) {
	t.Run("dispatches to the step validator", func(t *testing.T) {
		form := models.NewFormRecord()
		errs := Step(models.StepBasicDetails, form)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs, "firstName")
	})

	t.Run("terminal step always passes", func(t *testing.T) {
		assert.Empty(t, Step(models.StepVerificationStatus, models.NewFormRecord()))
	})

	t.Run("validation does not mutate the record", func(t *testing.T) {
		form := models.NewFormRecord()
		before := form.Clone()
		_ = Step(models.StepProfessionalDetails, form)
		assert.Equal(t, before, form)
	})
}
