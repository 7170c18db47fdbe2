package domain

import "time"

type ReplyCreationData struct {
	Thread ThreadId
	Author Author
	Body   MsgText
}

type Reply struct {
	Id        ReplyId   `json:"id"`
	Thread    ThreadId  `json:"thread_id"`
	Author    Author    `json:"author"`
	Body      MsgText   `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
