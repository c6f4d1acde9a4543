package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/normalize"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/metrics"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Match pairs the caller with another user whose skills overlap.
type Match struct {
	User *data.User
	// Score is len(TheyCanTeach) + len(TheyWantToLearn).
	Score int
	// TheyCanTeach holds the caller's skills-to-learn the user teaches.
	TheyCanTeach []string
	// TheyWantToLearn holds the caller's skills-to-teach the user wants.
	TheyWantToLearn []string
}

// keySet indexes a skill list by normalized name.
func keySet(skills []data.Skill) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[normalize.SkillName(s.Name)] = struct{}{}
	}
	return set
}

// intersect returns the names in mine whose key is in theirs, in mine's
// order.
func intersect(mine []data.Skill, theirs map[string]struct{}) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, s := range mine {
		k := normalize.SkillName(s.Name)
		if _, ok := theirs[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s.Name)
	}
	return out
}

// scoreCandidates computes matches of caller against candidates, keeping
// candidate order among equal scores.
func scoreCandidates(caller *data.User, candidates []*data.User) []Match {
	if len(caller.SkillsToLearn) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0)
	for _, c := range candidates {
		if c == nil || c.ID == caller.ID {
			continue
		}
		canTeach := intersect(caller.SkillsToLearn, keySet(c.SkillsToTeach))
		wantLearn := intersect(caller.SkillsToTeach, keySet(c.SkillsToLearn))
		score := len(canTeach) + len(wantLearn)
		if score == 0 {
			continue
		}
		matches = append(matches, Match{
			User:            publicUser(c),
			Score:           score,
			TheyCanTeach:    canTeach,
			TheyWantToLearn: wantLearn,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}

// ComputeMatches returns every other user sharing at least one skill with
// the caller in either direction, best first. A caller with nothing to learn
// gets an empty list.
func (e *Engine) ComputeMatches(ctx context.Context, callerID bson.ObjectID) ([]Match, error) {
	const op = "ComputeMatches"

	caller, err := e.users.GetUserByID(ctx, callerID)
	if err != nil {
		return nil, storeErr(op, "user", err)
	}
	if len(caller.SkillsToLearn) == 0 {
		metrics.RecordMatchResults(0)
		return []Match{}, nil
	}

	candidates, err := e.users.ListUsersExcept(ctx, callerID)
	if err != nil {
		return nil, storeErr(op, "users", err)
	}

	matches := scoreCandidates(caller, candidates)
	metrics.RecordMatchResults(len(matches))
	return matches, nil
}

// SearchBySkill finds other users by a case-insensitive substring of a skill
// name. With kind learn it searches what others teach; otherwise what they
// want to learn.
func (e *Engine) SearchBySkill(ctx context.Context, callerID bson.ObjectID, query string, kind data.SkillKind) ([]*data.User, error) {
	const op = "SearchBySkill"

	q := normalize.SkillName(query)
	if q == "" {
		return nil, validationf(op, "query is required")
	}

	// Searching for something to learn means looking at what others teach
	list := data.SkillsToLearn
	if kind == data.SkillsToLearn {
		list = data.SkillsToTeach
	}

	candidates, err := e.users.ListUsersExcept(ctx, callerID)
	if err != nil {
		return nil, storeErr(op, "users", err)
	}

	out := make([]*data.User, 0)
	for _, c := range candidates {
		if c.ID == callerID {
			continue
		}
		for _, s := range c.Skills(list) {
			if strings.Contains(normalize.SkillName(s.Name), q) {
				out = append(out, publicUser(c))
				break
			}
		}
	}
	return out, nil
}
