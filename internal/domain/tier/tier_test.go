package tier_test

import (
	"math"
	"testing"

	"github.com/okian/studytrack/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given the classification thresholds", t, func() {
		cases := []struct {
			score float64
			code  tier.Code
			label string
		}{
			{0, tier.Low, "low performance"},
			{4.99, tier.Low, "low performance"},
			{5.0, tier.Mid, "intermediate performance"},
			{6.999, tier.Mid, "intermediate performance"},
			{7.0, tier.High, "high performance"},
			{8.5, tier.High, "high performance"},
			{9.0, tier.Excellent, "excellent performance"},
			{10, tier.Excellent, "excellent performance"},
		}

		Convey("When classifying in-range scores", func() {
			Convey("Then each score lands in the expected band", func() {
				for _, c := range cases {
					code, label := tier.Classify(c.score)
					So(code, ShouldEqual, c.code)
					So(label, ShouldEqual, c.label)
				}
			})
		})

		Convey("When classifying boundary values", func() {
			Convey("Then the boundary belongs to the upper band", func() {
				code, _ := tier.Classify(5.0)
				So(code, ShouldEqual, tier.Mid)
				code, _ = tier.Classify(7.0)
				So(code, ShouldEqual, tier.High)
				code, _ = tier.Classify(9.0)
				So(code, ShouldEqual, tier.Excellent)
			})

			Convey("And the value just below stays in the lower band", func() {
				code, _ := tier.Classify(math.Nextafter(5.0, 0))
				So(code, ShouldEqual, tier.Low)
				code, _ = tier.Classify(math.Nextafter(7.0, 0))
				So(code, ShouldEqual, tier.Mid)
				code, _ = tier.Classify(math.Nextafter(9.0, 0))
				So(code, ShouldEqual, tier.High)
			})
		})

		Convey("When classifying out-of-range scores", func() {
			Convey("Then they are classified by the same rule", func() {
				code, _ := tier.Classify(-3)
				So(code, ShouldEqual, tier.Low)
				code, _ = tier.Classify(42)
				So(code, ShouldEqual, tier.Excellent)
			})
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given the tier table", t, func() {
		Convey("When looking up every known code", func() {
			Convey("Then each has a distinct advice and frequency", func() {
				advice := map[string]bool{}
				freq := map[string]bool{}
				for _, c := range tier.Codes() {
					p, ok := tier.Lookup(c)
					So(ok, ShouldBeTrue)
					So(p.Code, ShouldEqual, c)
					So(c.Valid(), ShouldBeTrue)
					advice[p.Advice] = true
					freq[p.Frequency] = true
				}
				So(len(advice), ShouldEqual, 4)
				So(len(freq), ShouldEqual, 4)
			})
		})

		Convey("When looking up an unknown code", func() {
			p, ok := tier.Lookup("bogus")

			Convey("Then the fallback profile is returned", func() {
				So(ok, ShouldBeFalse)
				So(p.Advice, ShouldEqual, tier.NoAdvice)
				So(p.Frequency, ShouldEqual, tier.NoFrequency)
				So(tier.Code("bogus").Valid(), ShouldBeFalse)
				So(tier.Frequency("bogus"), ShouldEqual, "N/A")
			})
		})

		Convey("Then the high tier frequency matches the table", func() {
			So(tier.Frequency(tier.High), ShouldEqual, "1–3 times per week")
		})
	})
}
