package protocol

// Message type tags, shared by both directions of the wire.
const (
	TypeQuestion = "question"
	TypeResult   = "result"
	TypeScore    = "score"
	TypeEnd      = "end"
	TypeChat     = "chat"
	TypeAnswer   = "answer"
)

// ServerName is the sender name used for server-originated chat notices
const ServerName = "Server"

// NoWinner is the winner sentinel broadcast when the session ends with
// an empty score map
const NoWinner = "No players"

// NoWinnerAborted is the winner sentinel broadcast when the session is
// aborted because the player count dropped below the required quota
const NoWinnerAborted = "No winner - not enough players"

// QuestionMessage delivers the active question to every player
type QuestionMessage struct {
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	QuestionNum    int      `json:"question_num"` // 1-based
	TotalQuestions int      `json:"total_questions"`
	TimeLimit      int      `json:"time_limit"` // seconds
}

// ResultMessage announces how the active question was resolved. For a
// timeout resolution Player and Correct are omitted and Timeout is set.
type ResultMessage struct {
	Type     string `json:"type"`
	Player   string `json:"player,omitempty"`
	Correct  *bool  `json:"correct,omitempty"`
	Timeout  bool   `json:"timeout,omitempty"`
	MoveNext bool   `json:"move_next"`
}

// ScoreMessage carries the current score mapping, keyed by display name
type ScoreMessage struct {
	Type   string         `json:"type"`
	Scores map[string]int `json:"scores"`
}

// EndMessage terminates the session, naming the winner or a no-winner
// sentinel
type EndMessage struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
}

// ChatMessage relays player chat and server notices
type ChatMessage struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Msg  string `json:"msg"`
}

// ClientMessage is any inbound record from a client: an answer submission
// or a chat line
type ClientMessage struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Answer int    `json:"answer"`
	Msg    string `json:"msg"`
}

// ServerMessage is the union of every server-to-client record, used by
// clients that decode a stream of mixed event kinds
type ServerMessage struct {
	Type           string         `json:"type"`
	Question       string         `json:"question,omitempty"`
	Options        []string       `json:"options,omitempty"`
	QuestionNum    int            `json:"question_num,omitempty"`
	TotalQuestions int            `json:"total_questions,omitempty"`
	TimeLimit      int            `json:"time_limit,omitempty"`
	Player         string         `json:"player,omitempty"`
	Correct        *bool          `json:"correct,omitempty"`
	Timeout        bool           `json:"timeout,omitempty"`
	MoveNext       bool           `json:"move_next,omitempty"`
	Scores         map[string]int `json:"scores,omitempty"`
	Winner         string         `json:"winner,omitempty"`
	Name           string         `json:"name,omitempty"`
	Msg            string         `json:"msg,omitempty"`
}
