package jobs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"careercoach-backend/internal/shared/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the fields a cover letter or optimization prompt cannot do without.
func (j JobPosting) Validate() error {
	return check("job.validate", j)
}

func (p UserSkillProfile) Validate() error {
	return check("profile.validate", p)
}

func check(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(op, "%v", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
	}
	return apperr.Validation(op, "%s", strings.Join(parts, "; "))
}
