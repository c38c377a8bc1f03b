package posts

import "strings"

// Form field names as posted by the dashboard.
const (
	FieldTitle           = "title"
	FieldSlug            = "slug"
	FieldMetaTitle       = "meta-title"
	FieldMetaDescription = "meta-description"
	FieldUserID          = "userId"
	FieldFile            = "file"
)

// Fields are the validated values of a post submission.
type Fields struct {
	Title           string
	Slug            string
	MetaTitle       string
	MetaDescription string
	AuthorID        string
}

type ValidationResult struct {
	Success bool
	Fields  Fields
	Errors  map[string][]string
	Message string
}

// ValidateSubmission checks the text fields of a post form. It has no side
// effects; the file part and the author's existence are checked by the
// workflow.
func ValidateSubmission(values map[string]string) ValidationResult {
	errs := make(map[string][]string)
	addErr := func(field, msg string) {
		errs[field] = append(errs[field], msg)
	}

	title, ok := values[FieldTitle]
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		addErr(FieldTitle, "Please enter a post title.")
	}

	slug, ok := values[FieldSlug]
	slug = strings.TrimSpace(slug)
	if !ok || slug == "" {
		addErr(FieldSlug, "Please enter a slug.")
	}

	metaTitle, ok := values[FieldMetaTitle]
	if !ok {
		addErr(FieldMetaTitle, "Please enter a meta title.")
	}

	metaDescription, ok := values[FieldMetaDescription]
	if !ok {
		addErr(FieldMetaDescription, "Please enter a meta description.")
	}

	authorID, ok := values[FieldUserID]
	authorID = strings.TrimSpace(authorID)
	if !ok || authorID == "" {
		addErr(FieldUserID, "Please select a user.")
	}

	if len(errs) > 0 {
		return ValidationResult{
			Success: false,
			Errors:  errs,
			Message: msgMissingFields,
		}
	}
	return ValidationResult{
		Success: true,
		Fields: Fields{
			Title:           title,
			Slug:            slug,
			MetaTitle:       strings.TrimSpace(metaTitle),
			MetaDescription: strings.TrimSpace(metaDescription),
			AuthorID:        authorID,
		},
	}
}
