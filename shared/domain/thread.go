package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Board  BoardId
	Author Author
	Title  ThreadTitle
	Body   MsgText
	Media  *MediaRef
}

type Thread struct {
	Id           ThreadId    `json:"id"`
	Board        BoardId     `json:"board_id"`
	Author       Author      `json:"author"`
	Title        ThreadTitle `json:"title"`
	Body         MsgText     `json:"body"`
	CreatedAt    time.Time   `json:"created_at"`
	LastActivity time.Time   `json:"last_activity"`
	Media        *MediaRef   `json:"media,omitempty"`
}

type ThreadWithReplies struct {
	Thread
	Replies []Reply `json:"replies"`
}

// ThreadPage is one pagination window of a board's threads,
// most recently active first.
type ThreadPage struct {
	Board        Board    `json:"board"`
	Threads      []Thread `json:"threads"`
	Page         int      `json:"page"`
	PageSize     int      `json:"page_size"`
	TotalThreads int      `json:"total_threads"`
	TotalPages   int      `json:"total_pages"`
}
