package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func skills(names ...string) []data.Skill {
	out := make([]data.Skill, len(names))
	for i, n := range names {
		out[i] = data.Skill{Name: n}
	}
	return out
}

func TestScoreCandidates(t *testing.T) {
	Convey("Given a caller who wants to learn Guitar and Piano and teaches Spanish", t, func() {
		caller := &data.User{
			ID:            bson.NewObjectID(),
			SkillsToLearn: skills("Guitar", "Piano"),
			SkillsToTeach: skills("Spanish"),
		}

		Convey("When candidates overlap in different amounts", func() {
			one := &data.User{ID: bson.NewObjectID(), DisplayName: "one", SkillsToTeach: skills("piano")}
			none := &data.User{ID: bson.NewObjectID(), DisplayName: "none", SkillsToTeach: skills("Drums")}
			three := &data.User{ID: bson.NewObjectID(), DisplayName: "three", Password: "secret",
				SkillsToTeach: skills(" GUITAR ", "Piano"), SkillsToLearn: skills("spanish")}
			alsoOne := &data.User{ID: bson.NewObjectID(), DisplayName: "alsoOne", SkillsToLearn: skills("SPANISH")}

			matches := scoreCandidates(caller, []*data.User{one, none, three, alsoOne, caller})

			Convey("Then non-overlapping users and the caller are excluded", func() {
				So(len(matches), ShouldEqual, 3)
			})

			Convey("Then results are sorted by score with ties in candidate order", func() {
				So(matches[0].User.DisplayName, ShouldEqual, "three")
				So(matches[0].Score, ShouldEqual, 3)
				So(matches[1].User.DisplayName, ShouldEqual, "one")
				So(matches[2].User.DisplayName, ShouldEqual, "alsoOne")
			})

			Convey("Then overlaps are reported case-insensitively in the caller's order", func() {
				So(matches[0].TheyCanTeach, ShouldResemble, []string{"Guitar", "Piano"})
				So(matches[0].TheyWantToLearn, ShouldResemble, []string{"Spanish"})
				So(matches[2].TheyCanTeach, ShouldBeEmpty)
				So(matches[2].TheyWantToLearn, ShouldResemble, []string{"Spanish"})
			})

			Convey("Then credentials are not exposed", func() {
				So(matches[0].User.Password, ShouldBeEmpty)
				So(three.Password, ShouldEqual, "secret")
			})
		})

		Convey("When the caller has nothing to learn", func() {
			caller.SkillsToLearn = nil
			other := &data.User{ID: bson.NewObjectID(), SkillsToLearn: skills("Spanish")}

			Convey("Then the result is empty even if others want what the caller teaches", func() {
				So(scoreCandidates(caller, []*data.User{other}), ShouldBeEmpty)
			})
		})
	})
}

func TestComputeMatches(t *testing.T) {
	Convey("Given registered users with skills", t, func() {
		e, store := newTestEngine()
		ctx := context.Background()

		a := mustUser(store, "a@example.com", "A")
		b := mustUser(store, "b@example.com", "B")
		c := mustUser(store, "c@example.com", "C")

		mustSkill(e, a.ID, data.SkillsToLearn, "Guitar")
		mustSkill(e, b.ID, data.SkillsToTeach, "guitar")
		mustSkill(e, c.ID, data.SkillsToTeach, "Cooking")

		Convey("When A computes matches", func() {
			matches, err := e.ComputeMatches(ctx, a.ID)

			Convey("Then B appears with exactly the shared skill", func() {
				So(err, ShouldBeNil)
				So(len(matches), ShouldEqual, 1)
				So(matches[0].User.ID, ShouldEqual, b.ID)
				So(matches[0].TheyCanTeach, ShouldResemble, []string{"Guitar"})
			})
		})

		Convey("When B, who has nothing to learn, computes matches", func() {
			matches, err := e.ComputeMatches(ctx, b.ID)

			Convey("Then the list is empty and not an error", func() {
				So(err, ShouldBeNil)
				So(matches, ShouldNotBeNil)
				So(matches, ShouldBeEmpty)
			})
		})

		Convey("When an unknown user computes matches", func() {
			_, err := e.ComputeMatches(ctx, bson.NewObjectID())

			Convey("Then it is not found", func() {
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When searching by skill", func() {
			teachers, err := e.SearchBySkill(ctx, a.ID, "GUIT", data.SkillsToLearn)
			So(err, ShouldBeNil)

			Convey("Then users teaching a matching skill are found", func() {
				So(len(teachers), ShouldEqual, 1)
				So(teachers[0].ID, ShouldEqual, b.ID)
			})

			Convey("Then searching learners finds the caller's peers only", func() {
				learners, err := e.SearchBySkill(ctx, b.ID, "guitar", data.SkillsToTeach)
				So(err, ShouldBeNil)
				So(len(learners), ShouldEqual, 1)
				So(learners[0].ID, ShouldEqual, a.ID)
			})

			Convey("Then an empty query is a validation error", func() {
				_, err := e.SearchBySkill(ctx, a.ID, "  ", data.SkillsToLearn)
				So(errors.Is(err, ErrValidation), ShouldBeTrue)
			})
		})
	})
}
