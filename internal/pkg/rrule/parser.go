package rrule

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"github.com/teambition/rrule-go"
)

const (
	daySeconds   = 86400
	weekSeconds  = 7 * daySeconds
	monthSeconds = 30 * daySeconds
	yearSeconds  = 365 * daySeconds
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse converts an RRULE fragment (without the "RRULE:" marker) into the
// local repeat representation. An empty fragment means no repetition.
func (*Parser) Parse(fragment string, startTS int64) (model.RepeatRule, error) {
	if fragment == "" {
		return model.RepeatRule{}, nil
	}

	opt, err := rrule.StrToROption(fragment)
	if err != nil {
		return model.RepeatRule{}, fmt.Errorf("parse repeat rule %q: %w", fragment, err)
	}

	opt.Dtstart = time.Unix(startTS, 0)
	if _, err := rrule.NewRRule(*opt); err != nil {
		return model.RepeatRule{}, fmt.Errorf("make rule: %w", err)
	}

	var freqSeconds int64
	switch opt.Freq {
	case rrule.DAILY:
		freqSeconds = daySeconds
	case rrule.WEEKLY:
		freqSeconds = weekSeconds
	case rrule.MONTHLY:
		freqSeconds = monthSeconds
	case rrule.YEARLY:
		freqSeconds = yearSeconds
	default:
		return model.RepeatRule{}, fmt.Errorf("unsupported frequency in rule %q", fragment)
	}

	interval := opt.Interval
	if interval == 0 {
		interval = 1
	}

	res := model.RepeatRule{Interval: freqSeconds * int64(interval)}

	switch {
	case opt.Count > 0:
		res.Limit = int64(opt.Count)
	case !opt.Until.IsZero():
		res.Limit = opt.Until.Unix()
	}

	if opt.Freq == rrule.WEEKLY {
		for _, day := range opt.Byweekday {
			res.Rule |= 1 << day.Day()
		}
	}

	return res, nil
}
