package services

import (
	"strings"

	"github.com/google/uuid"
)

// MeetingLinks generates join links of the form <base>/abc-defg-hij.
type MeetingLinks struct {
	base string
}

func NewMeetingLinks(base string) *MeetingLinks {
	return &MeetingLinks{base: strings.TrimRight(base, "/")}
}

func (l *MeetingLinks) Generate() string {
	id := uuid.New()
	code := make([]byte, 0, 12)
	for i, b := range id[:10] {
		if i == 3 || i == 7 {
			code = append(code, '-')
		}
		code = append(code, 'a'+b%26)
	}
	return l.base + "/" + string(code)
}
