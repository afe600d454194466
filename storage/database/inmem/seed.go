package inmemdb

import (
	"time"

	"github.com/friendsofgo/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/user"
)

// Seed populates a fresh DB with a demo catalog: an admin and a student
// account, plus two active courses whose lessons are spread around `now` so
// that both unlocked and locked lessons exist on first boot.
func Seed(db *DB) error {
	usrRepo := NewUserRepository(db)
	crsRepo := NewCourseRepository(db)

	if err := seedUser(usrRepo, "Admin", "admin@darasa.io", "admin123", true); err != nil {
		return err
	}
	if err := seedUser(usrRepo, "Amina", "student@darasa.io", "student123", false); err != nil {
		return err
	}

	now := time.Now().UTC()

	crs1, err := crsRepo.CreateCourse(course.Course{
		Title:       "Photography Essentials",
		Description: "An introduction to the fundamentals of digital photography",
		CoverImage:  "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?w=800&h=600&fit=crop",
		Slug:        "photography-essentials",
		Status:      course.StatusActive,
		Order:       1,
	})
	if err != nil {
		return errors.Wrap(err, "seeding course")
	}
	mod1, err := crsRepo.CreateModule(course.Module{
		CourseID:    crs1.ID,
		Title:       "First steps",
		Description: null.StringFrom("Start your journey here"),
		Order:       1,
	})
	if err != nil {
		return errors.Wrap(err, "seeding module")
	}

	lessons1 := []seedLesson{
		{"Start here", "How this course works and what you will need", "5:12", -7 * day},
		{"Knowing your camera", "Bodies, lenses and the controls that matter", "18:40", -5 * day},
		{"Exposure basics", "Aperture, shutter speed and ISO", "22:05", -3 * day},
		{"Composition", "Framing, leading lines and the rule of thirds", "15:30", -1 * day},
		{"Natural light", "Reading and using available light", "20:00", 0},
		{"Editing workflow", "A simple post-processing routine", "25:45", 1 * day},
		{"Portraits", "Working with people in front of the lens", "30:10", 7 * day},
		{"Your first photo essay", "Putting it all together", "12:00", 14 * day},
	}
	if err = seedLessons(crsRepo, mod1.ID, now, lessons1); err != nil {
		return err
	}

	crs2, err := crsRepo.CreateCourse(course.Course{
		Title:       "Professional Photography Certification",
		Description: "The complete professional track with certification",
		CoverImage:  "https://images.unsplash.com/photo-1502920917128-1aa500764cbd?w=800&h=600&fit=crop",
		Slug:        "photography-certification",
		Status:      course.StatusActive,
		Order:       2,
	})
	if err != nil {
		return errors.Wrap(err, "seeding course")
	}
	mod2, err := crsRepo.CreateModule(course.Module{
		CourseID:    crs2.ID,
		Title:       "First steps",
		Description: null.StringFrom("Foundations of the professional track"),
		Order:       1,
	})
	if err != nil {
		return errors.Wrap(err, "seeding module")
	}

	lessons2 := []seedLesson{
		{"Welcome to the program", "What the certification covers", "10:00", -2 * day},
		{"Theory foundations", "The theory behind professional work", "25:30", 0},
		{"Supervised practice", "First assignments with feedback", "45:00", 7 * day},
	}
	return seedLessons(crsRepo, mod2.ID, now, lessons2)
}

const day = 24 * time.Hour

type seedLesson struct {
	title       string
	description string
	duration    string
	releaseIn   time.Duration
}

func seedUser(repo user.Repository, name, email, password string, isAdmin bool) error {
	usr := user.User{Name: name, Email: email, IsAdmin: isAdmin}
	if err := usr.SetPassword(password); err != nil {
		return errors.Wrap(err, "hashing seed password")
	}
	if _, err := repo.CreateUser(usr); err != nil {
		return errors.Wrap(err, "seeding user")
	}
	return nil
}

func seedLessons(repo course.Repository, moduleID string, now time.Time, lessons []seedLesson) error {
	for i, lsn := range lessons {
		_, err := repo.CreateLesson(course.Lesson{
			ModuleID:    moduleID,
			Title:       lsn.title,
			Description: null.StringFrom(lsn.description),
			VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Duration:    null.StringFrom(lsn.duration),
			ReleaseAt:   now.Add(lsn.releaseIn),
			Attachments: []string{},
			Order:       i + 1,
		})
		if err != nil {
			return errors.Wrap(err, "seeding lesson")
		}
	}
	return nil
}
