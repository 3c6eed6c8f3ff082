package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CodecTestSuite struct {
	suite.Suite
}

func TestCodecTestSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func (s *CodecTestSuite) TestMarshalQuestion() {
	msg := QuestionMessage{
		Type:           TypeQuestion,
		Question:       "What is the capital of France?",
		Options:        []string{"Paris", "London", "Berlin", "Madrid"},
		QuestionNum:    1,
		TotalQuestions: 10,
		TimeLimit:      20,
	}

	data, err := Marshal(msg)
	s.Require().NoError(err)

	// Records are newline-delimited on the wire
	s.Equal(byte('\n'), data[len(data)-1])

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(data[:len(data)-1], &decoded))
	s.Equal("question", decoded["type"])
	s.Equal("What is the capital of France?", decoded["question"])
	s.Equal(float64(1), decoded["question_num"])
	s.Equal(float64(10), decoded["total_questions"])
	s.Equal(float64(20), decoded["time_limit"])
	s.Len(decoded["options"], 4)
}

func (s *CodecTestSuite) TestMarshalAnswerResult() {
	correct := true
	msg := ResultMessage{
		Type:     TypeResult,
		Player:   "Ann",
		Correct:  &correct,
		MoveNext: true,
	}

	data, err := Marshal(msg)
	s.Require().NoError(err)

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal("Ann", decoded["player"])
	s.Equal(true, decoded["correct"])
	s.Equal(true, decoded["move_next"])

	// Timeout flag is omitted from answer results
	s.NotContains(decoded, "timeout")
}

func (s *CodecTestSuite) TestMarshalTimeoutResultOmitsPlayer() {
	msg := ResultMessage{
		Type:     TypeResult,
		Timeout:  true,
		MoveNext: true,
	}

	data, err := Marshal(msg)
	s.Require().NoError(err)

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal(true, decoded["timeout"])
	s.NotContains(decoded, "player")
	s.NotContains(decoded, "correct")
}

func (s *CodecTestSuite) TestParseClientAnswer() {
	msg, err := ParseClientMessage([]byte(`{"type":"answer","name":"Ann","answer":2}`))
	s.Require().NoError(err)
	s.Equal(TypeAnswer, msg.Type)
	s.Equal("Ann", msg.Name)
	s.Equal(2, msg.Answer)
}

func (s *CodecTestSuite) TestParseClientChat() {
	msg, err := ParseClientMessage([]byte(`{"type":"chat","name":"Bo","msg":"hello"}`))
	s.Require().NoError(err)
	s.Equal(TypeChat, msg.Type)
	s.Equal("Bo", msg.Name)
	s.Equal("hello", msg.Msg)
}

func (s *CodecTestSuite) TestParseClientMessageMalformed() {
	_, err := ParseClientMessage([]byte(`{"type":"answer","answer":`))
	s.Require().Error(err)
}

func (s *CodecTestSuite) TestParseClientMessageUnknownType() {
	_, err := ParseClientMessage([]byte(`{"type":"vote","name":"Ann"}`))
	s.Require().ErrorIs(err, ErrUnknownType)
}

func (s *CodecTestSuite) TestParseServerMessageRoundTrip() {
	data, err := Marshal(EndMessage{
		Type:   TypeEnd,
		Winner: NoWinnerAborted,
	})
	s.Require().NoError(err)

	msg, err := ParseServerMessage(data[:len(data)-1])
	s.Require().NoError(err)
	s.Equal(TypeEnd, msg.Type)
	s.Equal("No winner - not enough players", msg.Winner)
}
