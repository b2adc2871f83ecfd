package queue

import (
	"context"

	job "github.com/maheshrc27/pagepost/internal/jobs"
)

// Publisher runs one publish pass over the due posts.
type Publisher interface {
	Run(ctx context.Context) (*job.Summary, error)
}

type Queue struct {
	publisher Publisher
}

func NewQueue(publisher Publisher) *Queue {
	return &Queue{publisher: publisher}
}

const TaskTypePublishDuePosts = "posts:publish_due"

type PublishDuePostsPayload struct {
	Trigger string `json:"trigger"`
}
