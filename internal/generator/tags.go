package generator

import (
	"strings"
	"time"

	"github.com/stoewer/go-strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/provision-dev/provision/pkg/models"
)

var titleCaser = cases.Title(language.English)

// NormalizeTagKey converts a user-supplied tag key into the canonical
// hyphen-separated, capitalized form: "cost_center" → "Cost-Center".
func NormalizeTagKey(key string) string {
	kebab := strcase.KebabCase(key)
	parts := strings.Split(kebab, "-")
	for i, p := range parts {
		parts[i] = titleCaser.String(p)
	}
	return strings.Join(parts, "-")
}

// mergeTags computes the system tags for a request and overlays the
// request's own tags, normalized, on top. User tags win on key collision.
func mergeTags(req *models.ResourceRequest, now time.Time, extra map[string]string) map[string]string {
	tags := map[string]string{
		"Environment": string(req.Environment),
		"CreatedBy":   managedByLabel,
		"CreatedAt":   now.UTC().Format(time.RFC3339),
	}
	for k, v := range extra {
		tags[k] = v
	}
	for k, v := range req.Tags {
		tags[NormalizeTagKey(k)] = v
	}
	return tags
}
