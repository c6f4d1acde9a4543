package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func strPtr(s string) *string { return &s }

func TestProfileSkills(t *testing.T) {
	Convey("Given a registered user", t, func() {
		e, store := newTestEngine()
		ctx := context.Background()
		u := mustUser(store, "u@example.com", "U")

		Convey("When adding a skill without a level", func() {
			got, err := e.AddSkill(ctx, u.ID, data.SkillsToTeach, SkillInput{Name: "  Guitar ", Description: "acoustic"})

			Convey("Then it is stored trimmed with the default level", func() {
				So(err, ShouldBeNil)
				So(len(got.SkillsToTeach), ShouldEqual, 1)
				So(got.SkillsToTeach[0].Name, ShouldEqual, "Guitar")
				So(got.SkillsToTeach[0].Key, ShouldEqual, "guitar")
				So(got.SkillsToTeach[0].Level, ShouldEqual, "intermediate")
				So(got.Password, ShouldBeEmpty)
			})

			Convey("Then the same name in another case conflicts", func() {
				_, err := e.AddSkill(ctx, u.ID, data.SkillsToTeach, SkillInput{Name: "GUITAR"})
				So(errors.Is(err, ErrConflict), ShouldBeTrue)
			})

			Convey("Then the same name is allowed in the learn list", func() {
				_, err := e.AddSkill(ctx, u.ID, data.SkillsToLearn, SkillInput{Name: "guitar", Level: "Beginner"})
				So(err, ShouldBeNil)
			})

			Convey("Then it can be removed by any casing", func() {
				got, err := e.RemoveSkill(ctx, u.ID, data.SkillsToTeach, "gUiTaR")
				So(err, ShouldBeNil)
				So(got.SkillsToTeach, ShouldBeEmpty)

				_, err = e.RemoveSkill(ctx, u.ID, data.SkillsToTeach, "guitar")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When skill input is invalid", func() {
			cases := []struct {
				kind data.SkillKind
				in   SkillInput
			}{
				{"mentor", SkillInput{Name: "Chess"}},
				{data.SkillsToTeach, SkillInput{Name: " "}},
				{data.SkillsToTeach, SkillInput{Name: strings.Repeat("s", 101)}},
				{data.SkillsToTeach, SkillInput{Name: "Chess", Description: strings.Repeat("d", 501)}},
				{data.SkillsToTeach, SkillInput{Name: "Chess", Level: "guru"}},
			}
			for _, c := range cases {
				_, err := e.AddSkill(ctx, u.ID, c.kind, c.in)
				So(errors.Is(err, ErrValidation), ShouldBeTrue)
			}
		})

		Convey("When the user does not exist", func() {
			_, err := e.AddSkill(ctx, bson.NewObjectID(), data.SkillsToLearn, SkillInput{Name: "Chess"})
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)

			_, err = e.GetProfile(ctx, bson.NewObjectID())
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestUpdateProfile(t *testing.T) {
	Convey("Given a registered user", t, func() {
		e, store := newTestEngine()
		ctx := context.Background()
		u := mustUser(store, "u@example.com", "U")

		Convey("When updating bio only", func() {
			got, err := e.UpdateProfile(ctx, u.ID, data.ProfilePatch{Bio: strPtr(" teaches chess ")})

			Convey("Then other fields are kept", func() {
				So(err, ShouldBeNil)
				So(got.Bio, ShouldEqual, "teaches chess")
				So(got.DisplayName, ShouldEqual, "U")
			})
		})

		Convey("When clearing the display name", func() {
			_, err := e.UpdateProfile(ctx, u.ID, data.ProfilePatch{DisplayName: strPtr("  ")})
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
		})

		Convey("When the bio is too long", func() {
			_, err := e.UpdateProfile(ctx, u.ID, data.ProfilePatch{Bio: strPtr(strings.Repeat("b", 501))})
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
		})
	})
}

func TestErrorKinds(t *testing.T) {
	Convey("Given engine errors", t, func() {
		Convey("Then each matches only its own kind", func() {
			err := validationf("Op", "bad %s", "input")
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
			So(errors.Is(err, ErrConflict), ShouldBeFalse)
			So(err.Error(), ShouldEqual, "Op: bad input")
		})

		Convey("Then store errors are classified", func() {
			So(errors.Is(storeErr("Op", "user", data.ErrNotFound), ErrNotFound), ShouldBeTrue)
			So(errors.Is(storeErr("Op", "skill", data.ErrDuplicate), ErrConflict), ShouldBeTrue)
			So(errors.Is(storeErr("Op", "user", context.DeadlineExceeded), ErrDependency), ShouldBeTrue)

			dep := storeErr("Op", "user", errors.New("connection reset"))
			So(errors.Is(dep, ErrDependency), ShouldBeTrue)
			So(dep.Error(), ShouldContainSubstring, "connection reset")
		})
	})
}
