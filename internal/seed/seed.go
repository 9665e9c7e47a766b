// Package seed loads the sample catalog into an empty database.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/bookreview/internal/models"
	"github.com/javajoker/bookreview/internal/services"
)

type sampleBook struct {
	title       string
	author      string
	genre       string
	year        int
	isbn        string
	description string
	ageDays     int
}

type sampleReview struct {
	book     int
	reviewer string
	rating   int
	comment  string
	ageDays  int
}

var sampleBooks = []sampleBook{
	{
		title:       "The Great Gatsby",
		author:      "F. Scott Fitzgerald",
		genre:       "Classic Fiction",
		year:        1925,
		isbn:        "978-0-7432-7356-5",
		description: "A classic American novel that explores themes of decadence, idealism, resistance to change, social upheaval, and excess, creating a portrait of the Jazz Age.",
		ageDays:     30,
	},
	{
		title:       "To Kill a Mockingbird",
		author:      "Harper Lee",
		genre:       "Classic Fiction",
		year:        1960,
		isbn:        "978-0-06-112008-4",
		description: "A gripping, heart-wrenching, and wholly remarkable tale of coming-of-age in a South poisoned by virulent prejudice.",
		ageDays:     25,
	},
	{
		title:       "1984",
		author:      "George Orwell",
		genre:       "Dystopian Fiction",
		year:        1949,
		isbn:        "978-0-452-28423-4",
		description: "A dystopian social science fiction novel that follows the life of Winston Smith, a low ranking member of 'the Party', who is frustrated by the omnipresent eyes of the party.",
		ageDays:     20,
	},
	{
		title:       "Pride and Prejudice",
		author:      "Jane Austen",
		genre:       "Romance",
		year:        1813,
		isbn:        "978-0-14-143951-8",
		description: "A romantic novel of manners that follows the character development of Elizabeth Bennet, the dynamic protagonist who learns about the repercussions of hasty judgments.",
		ageDays:     15,
	},
	{
		title:       "The Catcher in the Rye",
		author:      "J.D. Salinger",
		genre:       "Coming-of-age Fiction",
		year:        1951,
		isbn:        "978-0-316-76948-0",
		description: "A controversial novel originally published for adults, it has since become popular with adolescent readers for its themes of teenage rebellion and alienation.",
		ageDays:     10,
	},
}

var sampleReviews = []sampleReview{
	{0, "Alice Johnson", 5, "A masterpiece of American literature! Fitzgerald's prose is absolutely beautiful, and the story of Jay Gatsby is both tragic and captivating. The themes of the American Dream and social class are explored with incredible depth.", 28},
	{0, "Bob Smith", 4, "Great book with beautiful writing, though sometimes the pacing felt a bit slow. The symbolism is rich and the characters are well-developed. Definitely worth reading for anyone interested in American classics.", 26},
	{1, "Carol Williams", 5, "To Kill a Mockingbird is a powerful and moving story that deals with important themes of racism and moral growth. Harper Lee's storytelling is masterful, and Scout is an unforgettable narrator.", 23},
	{2, "David Brown", 5, "Orwell's 1984 is more relevant today than ever. The concept of Big Brother and thoughtcrime are chilling. A must-read that makes you think about surveillance and freedom in our modern world.", 18},
	{2, "Emma Davis", 4, "1984 is definitely a thought-provoking read. While some parts were intense and disturbing, that's exactly what Orwell intended. The world-building is incredible and the warnings about totalitarianism are important.", 17},
	{3, "Frank Miller", 4, "Jane Austen's wit and social commentary shine in Pride and Prejudice. Elizabeth Bennet is a wonderful character, and the romance with Mr. Darcy is beautifully developed. The dialogue is sharp and entertaining.", 13},
	{4, "Grace Wilson", 3, "The Catcher in the Rye is an interesting character study of teenage angst. Holden Caulfield can be frustrating at times, but that's the point. Not for everyone, but it captures the alienation of adolescence well.", 8},
	{4, "Henry Taylor", 5, "A timeless classic that perfectly captures the confusion and rebellion of teenage years. Salinger's voice through Holden is authentic and memorable. This book stays with you long after you finish reading.", 7},
	{3, "Isabel Anderson", 5, "Pride and Prejudice is simply delightful! The characters are vivid, the plot is engaging, and Austen's writing is both witty and insightful. This book never gets old no matter how many times you read it.", 5},
	{0, "Jack Thompson", 4, "The Great Gatsby is beautifully written with rich symbolism. The green light, the eyes of Doctor T.J. Eckleburg - these images are unforgettable. A profound meditation on the American Dream.", 3},
}

// Result reports what a seeding run inserted.
type Result struct {
	Books   int
	Reviews int
}

type Seeder struct {
	books   *services.BookService
	reviews *services.ReviewService
	now     func() time.Time
}

func New(books *services.BookService, reviews *services.ReviewService) *Seeder {
	return &Seeder{
		books:   books,
		reviews: reviews,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run inserts the sample books and reviews, dated relative to now. It does
// nothing when the catalog already holds a book.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var result Result

	n, err := s.books.TotalCount(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to count books: %w", err)
	}
	if n > 0 {
		logrus.WithField("books", n).Debug("Catalog not empty, skipping seed data")
		return result, nil
	}

	now := s.now()
	saved := make([]*models.Book, 0, len(sampleBooks))
	for _, sb := range sampleBooks {
		year := sb.year
		book := &models.Book{
			Title:           sb.title,
			Author:          sb.author,
			Genre:           sb.genre,
			ISBN:            sb.isbn,
			Description:     sb.description,
			PublicationYear: &year,
		}
		book.CreatedAt = now.AddDate(0, 0, -sb.ageDays)

		b, err := s.books.Save(ctx, book)
		if err != nil {
			return result, fmt.Errorf("failed to seed book %q: %w", sb.title, err)
		}
		saved = append(saved, b)
		result.Books++
	}

	for _, sr := range sampleReviews {
		review := &models.Review{
			ReviewerName: sr.reviewer,
			Rating:       sr.rating,
			Comment:      sr.comment,
			BookID:       saved[sr.book].ID,
		}
		review.CreatedAt = now.AddDate(0, 0, -sr.ageDays)

		if _, err := s.reviews.Save(ctx, review); err != nil {
			return result, fmt.Errorf("failed to seed review by %q: %w", sr.reviewer, err)
		}
		result.Reviews++
	}

	logrus.WithFields(logrus.Fields{
		"books":   result.Books,
		"reviews": result.Reviews,
	}).Info("Sample data initialized")
	return result, nil
}
