package domain

type (
	BoardId   = int
	BoardName = string

	ThreadId    = int64
	ThreadTitle = string

	ReplyId = int64
	MsgText = string
	Author  = string
)

const DefaultAuthor Author = "Anonymous"

// SequenceNamespace names an independent id sequence.
type SequenceNamespace string

const (
	ThreadSequence SequenceNamespace = "threads"
	ReplySequence  SequenceNamespace = "replies"
)
