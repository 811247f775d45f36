package model_test

import (
	"testing"

	model "github.com/okian/studytrack/internal/domain/model"
	"github.com/okian/studytrack/internal/domain/tier"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewRecord(t *testing.T) {
	convey.Convey("Given a new performance record", t, func() {
		convey.Convey("When built from an in-range score", func() {
			rec := model.NewRecord("Ana", 8.5, "development", "Databases")

			convey.Convey("Then the tier is derived from the score", func() {
				convey.So(rec.StudentName, convey.ShouldEqual, "Ana")
				convey.So(rec.Score, convey.ShouldEqual, 8.5)
				convey.So(rec.TierCode, convey.ShouldEqual, tier.High)
				convey.So(rec.TierLabel, convey.ShouldEqual, "high performance")
				convey.So(rec.Course, convey.ShouldEqual, "development")
				convey.So(rec.Subject, convey.ShouldEqual, "Databases")
			})

			convey.Convey("And store-assigned fields are empty", func() {
				convey.So(rec.ID, convey.ShouldEqual, 0)
				convey.So(rec.CreatedAt.IsZero(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When built from a negative score", func() {
			rec := model.NewRecord("Bruno", -1, "", "")

			convey.Convey("Then it is accepted and classified low", func() {
				convey.So(rec.TierCode, convey.ShouldEqual, tier.Low)
			})
		})
	})
}

func TestFormatScore(t *testing.T) {
	convey.Convey("Given scores to render", t, func() {
		convey.So(model.FormatScore(8.5), convey.ShouldEqual, "8.5")
		convey.So(model.FormatScore(9), convey.ShouldEqual, "9.0")
		convey.So(model.FormatScore(0), convey.ShouldEqual, "0.0")
		convey.So(model.FormatScore(-2), convey.ShouldEqual, "-2.0")
		convey.So(model.FormatScore(7.0001), convey.ShouldEqual, "7.0001")
		a, b := 0.1, 0.2
		convey.So(model.FormatScore(a+b), convey.ShouldEqual, "0.30000000000000004")

		convey.Convey("Very small and very large scores use exponent form", func() {
			convey.So(model.FormatScore(1e-05), convey.ShouldEqual, "1e-05")
			convey.So(model.FormatScore(0.0001), convey.ShouldEqual, "0.0001")
			convey.So(model.FormatScore(1e16), convey.ShouldEqual, "1e+16")
			convey.So(model.FormatScore(1.5e16), convey.ShouldEqual, "1.5e+16")
			convey.So(model.FormatScore(1e15), convey.ShouldEqual, "1000000000000000.0")
			convey.So(model.FormatScore(-2.5e-7), convey.ShouldEqual, "-2.5e-07")
		})
	})
}
