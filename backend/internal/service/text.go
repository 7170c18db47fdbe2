package service

import (
	"fmt"
	"unicode/utf8"

	"github.com/fourchess/fourchess/backend/internal/service/utils"
	"github.com/fourchess/fourchess/shared/domain"
	"github.com/fourchess/fourchess/shared/errors"
)

const (
	maxAuthorLen    = 40
	maxTitleLen     = 200
	maxBoardNameLen = 64
)

// requiredText normalizes s and rejects it when nothing is left.
func requiredText(field, s string, maxLen int) (string, error) {
	clean := utils.NormalizeText(s)
	if clean == "" {
		return "", errors.Validation(fmt.Sprintf("%s cannot be empty", field))
	}
	if maxLen > 0 && utf8.RuneCountInString(clean) > maxLen {
		return "", errors.Validation(fmt.Sprintf("%s is longer than %d characters", field, maxLen))
	}
	return clean, nil
}

func authorName(s string) (domain.Author, error) {
	clean := utils.NormalizeText(s)
	if clean == "" {
		return domain.DefaultAuthor, nil
	}
	if utf8.RuneCountInString(clean) > maxAuthorLen {
		return "", errors.Validation(fmt.Sprintf("Name is longer than %d characters", maxAuthorLen))
	}
	return clean, nil
}
