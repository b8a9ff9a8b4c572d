package memory

import (
	"time"

	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
)

const sampleImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMjAwIiBoZWlnaHQ9IjEwMCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj4KICA8cmVjdCB3aWR0aD0iMjAwIiBoZWlnaHQ9IjEwMCIgZmlsbD0iIzRmYjNkOSIvPgogIDx0ZXh0IHg9IjEwMCIgeT0iNTUiIGZvbnQtZmFtaWx5PSJBcmlhbCIgZm9udC1zaXplPSIxNiIgZmlsbD0id2hpdGUiIHRleHQtYW5jaG9yPSJtaWRkbGUiPk5ldGxpZnkgU2FtcGxlPC90ZXh0Pgo8L3N2Zz4="

// SampleMemos returns the two demo memos shown on a fresh board: one created
// at now and one with an image created a day earlier.
func SampleMemos(now time.Time) []entities.Memo {
	type sample struct {
		id, title, content, category, image string
		tags                                []string
		age                                 time.Duration
	}
	samples := []sample{
		{
			id:       "1",
			title:    "Sample memo",
			content:  "This is a sample memo. It works without any backend!",
			category: "work",
			tags:     []string{"sample", "test", "demo"},
		},
		{
			id:       "2",
			title:    "Memo with a picture",
			content:  "An example of a memo with an attached image. Images are displayed inline.",
			category: "personal",
			image:    sampleImage,
			tags:     []string{"photo", "sample", "demo"},
			age:      24 * time.Hour,
		},
	}

	memos := make([]entities.Memo, 0, len(samples))
	for _, s := range samples {
		id, err := valueobjects.MemoIDFromString(s.id)
		if err != nil {
			panic(err)
		}
		content, err := valueobjects.NewMemoContent(s.title, s.content)
		if err != nil {
			panic(err)
		}
		image, err := valueobjects.ImageFromDataURI(s.image)
		if err != nil {
			panic(err)
		}
		memo, err := entities.NewMemo(id, content, s.category, image, s.tags, now.Add(-s.age))
		if err != nil {
			panic(err)
		}
		memos = append(memos, memo)
	}
	return memos
}
