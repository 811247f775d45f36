package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	repository "github.com/okian/studytrack/internal/adapters/repository"
	service "github.com/okian/studytrack/internal/app"
	"github.com/okian/studytrack/internal/domain/model"
	"github.com/okian/studytrack/internal/domain/recommend"
	"github.com/okian/studytrack/internal/domain/tier"
	"github.com/okian/studytrack/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// failingStore fails appends or lookups on demand.
type failingStore struct {
	*repository.MemoryStore
	appendErr error
	lookupErr error
}

func (f *failingStore) Append(ctx context.Context, rec model.PerformanceRecord) (model.PerformanceRecord, error) {
	if f.appendErr != nil {
		return model.PerformanceRecord{}, f.appendErr
	}
	return f.MemoryStore.Append(ctx, rec)
}

func (f *failingStore) MostRecent(ctx context.Context, name string) (model.PerformanceRecord, error) {
	if f.lookupErr != nil {
		return model.PerformanceRecord{}, f.lookupErr
	}
	return f.MemoryStore.MostRecent(ctx, name)
}

// fixedRecommender returns the same advice for every tier.
type fixedRecommender struct{}

func (fixedRecommender) Recommend(tier.Code) recommend.Recommendation {
	return recommend.Recommendation{Advice: "Peer tutoring", Frequency: "daily"}
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service backed by a SQLite file", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "students.db")
		svc := service.New(service.WithDBPath(path))

		Convey("When submitting before start", func() {
			_, err := svc.Submit(ctx, service.Submission{Name: "Ana", Score: "8"})

			Convey("Then ErrNotStarted is returned", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(svc.Ping(ctx), ShouldEqual, service.ErrNotStarted)
			})
		})

		Convey("When starting the service", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then it starts and reports stats", func() {
				So(err, ShouldBeNil)
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.Ping(ctx), ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["records"], ShouldEqual, 0)
				So(stats["dbPath"], ShouldEqual, path)
			})
		})

		Convey("When stopping a started service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()

			Convey("Then it is marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
				svc.Stop()
			})
		})

		Convey("When records were written before a restart", func() {
			So(svc.Start(ctx), ShouldBeNil)
			_, err := svc.Submit(ctx, service.Submission{Name: "Ana", Score: "8.5"})
			So(err, ShouldBeNil)
			svc.Stop()

			restarted := service.New(service.WithDBPath(path))
			So(restarted.Start(ctx), ShouldBeNil)
			defer restarted.Stop()

			Convey("Then the history survives", func() {
				res, err := restarted.Submit(ctx, service.Submission{Name: "Ana", Score: "8.5"})
				So(err, ShouldBeNil)
				So(res.Note, ShouldEqual, "No significant change in performance detected. Monitoring suggested: 1–3 times per week.")
			})
		})
	})
}

func TestService_Submit(t *testing.T) {
	Convey("Given a started service over an in-memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		svc := service.New(service.WithStore(store))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When Ana submits 8.5 and then 9.5", func() {
			first, err := svc.Submit(ctx, service.Submission{
				Name: "Ana", Score: "8.5", Course: "development", Subject: "Databases",
			})
			So(err, ShouldBeNil)
			second, err := svc.Submit(ctx, service.Submission{
				Name: "Ana", Score: "9.5", Course: "development", Subject: "Databases",
			})
			So(err, ShouldBeNil)

			Convey("Then the first result is a high-tier first evaluation", func() {
				So(first.Record.TierCode, ShouldEqual, tier.High)
				So(first.Record.TierLabel, ShouldEqual, "high performance")
				So(first.Feedback, ShouldEqual, "The student shows high performance (code: high).")
				So(first.Advice, ShouldEqual, "Additional advanced challenges")
				So(first.Frequency, ShouldEqual, "1–3 times per week")
				So(first.Note, ShouldEqual, "First evaluation recorded. Monitoring suggested: 1–3 times per week.")
				So(first.Record.Course, ShouldEqual, "development")
				So(first.Record.Subject, ShouldEqual, "Databases")
			})

			Convey("And the second result reports progress", func() {
				So(second.Record.TierCode, ShouldEqual, tier.Excellent)
				So(second.Note, ShouldEqual, "Progress detected: previous score was 8.5 and is now 9.5. Monitoring suggested: 1 time per week.")
			})

			Convey("And both records are stored", func() {
				n, err := store.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})
		})

		Convey("When the same score is submitted twice", func() {
			_, err := svc.Submit(ctx, service.Submission{Name: "Bruno", Score: "6"})
			So(err, ShouldBeNil)
			res, err := svc.Submit(ctx, service.Submission{Name: "Bruno", Score: "6.0"})
			So(err, ShouldBeNil)

			Convey("Then no change is reported", func() {
				So(res.Note, ShouldEqual, "No significant change in performance detected. Monitoring suggested: 3–5 times per week.")
			})
		})

		Convey("When the first submission for a name is made with any score", func() {
			Convey("Then the first evaluation note is always returned", func() {
				for i, score := range []string{"0", "5", "7", "9", "10", "-4", "12"} {
					name := "student-" + string(rune('a'+i))
					res, err := svc.Submit(ctx, service.Submission{Name: name, Score: score})
					So(err, ShouldBeNil)
					So(res.Note, ShouldStartWith, "First evaluation recorded.")
				}
			})
		})

		Convey("When the score is not a number", func() {
			for _, raw := range []string{"abc", "", "  ", "8,5", "NaN", "inf"} {
				_, err := svc.Submit(ctx, service.Submission{Name: "Ana", Score: raw})
				So(errors.Is(err, service.ErrInvalidScore), ShouldBeTrue)
				So(errors.Is(err, service.ErrValidation), ShouldBeTrue)
			}

			Convey("Then no record is written", func() {
				n, err := store.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})
		})

		Convey("When the name is missing", func() {
			_, err := svc.Submit(ctx, service.Submission{Name: "   ", Score: "7"})

			Convey("Then a validation error is returned and nothing is stored", func() {
				So(errors.Is(err, service.ErrMissingName), ShouldBeTrue)
				So(errors.Is(err, service.ErrValidation), ShouldBeTrue)
				n, _ := store.Count(ctx)
				So(n, ShouldEqual, 0)
			})
		})

		Convey("When course and subject do not match the catalog", func() {
			res, err := svc.Submit(ctx, service.Submission{
				Name: "Carla", Score: "4", Course: "analytics", Subject: "Databases",
			})

			Convey("Then they are stored as given", func() {
				So(err, ShouldBeNil)
				So(res.Record.Course, ShouldEqual, "analytics")
				So(res.Record.Subject, ShouldEqual, "Databases")
			})
		})
	})
}

func TestService_Options(t *testing.T) {
	Convey("Given a service with a custom recommender", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithStore(repository.NewMemoryStore()),
			service.WithRecommender(fixedRecommender{}),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a score is submitted", func() {
			res, err := svc.Submit(ctx, service.Submission{Name: "Ana", Score: "3"})

			Convey("Then its advice is used while tier and note are unchanged", func() {
				So(err, ShouldBeNil)
				So(res.Advice, ShouldEqual, "Peer tutoring")
				So(res.Frequency, ShouldEqual, "daily")
				So(res.Record.TierCode, ShouldEqual, tier.Low)
				So(res.Note, ShouldEqual, "First evaluation recorded. Monitoring suggested: 5–7 times per week.")
			})
		})
	})

	Convey("Given store options for the SQLite file opened by Start", t, func() {
		ctx := context.Background()
		at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		svc := service.New(
			service.WithDBPath(filepath.Join(t.TempDir(), "students.db")),
			service.WithStoreOptions(
				repository.WithBusyTimeout(time.Second),
				repository.WithClock(func() time.Time { return at }),
			),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a score is submitted", func() {
			res, err := svc.Submit(ctx, service.Submission{Name: "Ana", Score: "7"})

			Convey("Then the store was opened with them", func() {
				So(err, ShouldBeNil)
				So(res.Record.CreatedAt.Equal(at), ShouldBeTrue)
			})
		})
	})
}

func TestService_StoreFailures(t *testing.T) {
	Convey("Given a service over a store that can fail", t, func() {
		ctx := context.Background()
		store := &failingStore{MemoryStore: repository.NewMemoryStore()}
		svc := service.New(service.WithStore(store))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		_, err := svc.Submit(ctx, service.Submission{Name: "Ana", Score: "5"})
		So(err, ShouldBeNil)

		Convey("When the append fails", func() {
			store.appendErr = repository.ErrStore
			_, err := svc.Submit(ctx, service.Submission{Name: "Ana", Score: "9"})

			Convey("Then the error propagates and earlier records are untouched", func() {
				So(errors.Is(err, repository.ErrStore), ShouldBeTrue)
				So(errors.Is(err, service.ErrValidation), ShouldBeFalse)
				rec, err := store.MemoryStore.MostRecent(ctx, "Ana")
				So(err, ShouldBeNil)
				So(rec.Score, ShouldEqual, 5)
			})
		})

		Convey("When the lookup fails", func() {
			store.lookupErr = repository.ErrStore
			_, err := svc.Submit(ctx, service.Submission{Name: "Ana", Score: "9"})

			Convey("Then nothing is appended", func() {
				So(errors.Is(err, repository.ErrStore), ShouldBeTrue)
				n, _ := store.Count(ctx)
				So(n, ShouldEqual, 1)
			})
		})
	})
}

func TestParseScore(t *testing.T) {
	Convey("Given raw score strings", t, func() {
		v, err := service.ParseScore(" 8.5 ")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 8.5)

		v, err = service.ParseScore("1e1")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 10)

		_, err = service.ParseScore("eight")
		So(errors.Is(err, service.ErrInvalidScore), ShouldBeTrue)

		_, err = service.ParseScore("-Inf")
		So(errors.Is(err, service.ErrInvalidScore), ShouldBeTrue)

		for _, hex := range []string{"0x1p3", " -0X10 ", "+0x8"} {
			_, err = service.ParseScore(hex)
			So(errors.Is(err, service.ErrInvalidScore), ShouldBeTrue)
		}

		v, err = service.ParseScore("08")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 8)
	})
}
