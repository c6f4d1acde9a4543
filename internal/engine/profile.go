package engine

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	maxDisplayNameLen = 100
	maxBioLen         = 500
	maxSkillDescLen   = 500

	defaultLevel = "intermediate"
)

var levels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
	"expert":       true,
}

// SkillInput describes a skill to add to a profile.
type SkillInput struct {
	Name        string
	Description string
	Level       string
}

// GetProfile returns a user's public profile.
func (e *Engine) GetProfile(ctx context.Context, userID bson.ObjectID) (*data.User, error) {
	u, err := e.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeErr("GetProfile", "user", err)
	}
	return publicUser(u), nil
}

// UpdateProfile applies the provided profile fields.
func (e *Engine) UpdateProfile(ctx context.Context, userID bson.ObjectID, patch data.ProfilePatch) (*data.User, error) {
	const op = "UpdateProfile"

	if patch.DisplayName != nil {
		name := strings.TrimSpace(*patch.DisplayName)
		if name == "" {
			return nil, validationf(op, "display name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxDisplayNameLen {
			return nil, validationf(op, "display name must be at most %d characters", maxDisplayNameLen)
		}
		patch.DisplayName = &name
	}
	if patch.Bio != nil {
		bio := strings.TrimSpace(*patch.Bio)
		if utf8.RuneCountInString(bio) > maxBioLen {
			return nil, validationf(op, "bio must be at most %d characters", maxBioLen)
		}
		patch.Bio = &bio
	}
	if patch.PhotoURL != nil {
		u := strings.TrimSpace(*patch.PhotoURL)
		patch.PhotoURL = &u
	}

	u, err := e.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, storeErr(op, "user", err)
	}
	return publicUser(u), nil
}

// AddSkill appends a skill to the caller's teach or learn list. Names are
// unique within a list regardless of case.
func (e *Engine) AddSkill(ctx context.Context, userID bson.ObjectID, kind data.SkillKind, in SkillInput) (*data.User, error) {
	const op = "AddSkill"

	if !kind.Valid() {
		return nil, validationf(op, "skill type must be %q or %q", data.SkillsToTeach, data.SkillsToLearn)
	}
	name := strings.TrimSpace(in.Name)
	desc := strings.TrimSpace(in.Description)
	level := strings.ToLower(strings.TrimSpace(in.Level))
	if level == "" {
		level = defaultLevel
	}

	switch {
	case name == "":
		return nil, validationf(op, "skill name is required")
	case utf8.RuneCountInString(name) > maxSkillLen:
		return nil, validationf(op, "skill name must be at most %d characters", maxSkillLen)
	case utf8.RuneCountInString(desc) > maxSkillDescLen:
		return nil, validationf(op, "description must be at most %d characters", maxSkillDescLen)
	case !levels[level]:
		return nil, validationf(op, "level must be one of beginner, intermediate, advanced, expert")
	}

	skill := data.Skill{
		Name:        name,
		Key:         normalize.SkillName(name),
		Description: desc,
		Level:       level,
		AddedAt:     e.now().UTC(),
	}
	if err := e.users.AddSkill(ctx, userID, kind, skill); err != nil {
		return nil, storeErr(op, "skill "+name, err)
	}
	return e.GetProfile(ctx, userID)
}

// RemoveSkill deletes a skill from the caller's teach or learn list.
func (e *Engine) RemoveSkill(ctx context.Context, userID bson.ObjectID, kind data.SkillKind, name string) (*data.User, error) {
	const op = "RemoveSkill"

	if !kind.Valid() {
		return nil, validationf(op, "skill type must be %q or %q", data.SkillsToTeach, data.SkillsToLearn)
	}
	key := normalize.SkillName(name)
	if key == "" {
		return nil, validationf(op, "skill name is required")
	}
	if err := e.users.RemoveSkill(ctx, userID, kind, key); err != nil {
		return nil, storeErr(op, "skill "+strings.TrimSpace(name), err)
	}
	return e.GetProfile(ctx, userID)
}
