package services

import (
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

type ChatbotService struct {
	contactNumber string
}

var _ ports.ChatbotService = (*ChatbotService)(nil)

func NewChatbotService(contactNumber string) *ChatbotService {
	return &ChatbotService{contactNumber: contactNumber}
}

func (s *ChatbotService) Reply(question string) ports.ChatReply {
	topic, answer := domain.FAQReply(question, s.contactNumber)
	return ports.ChatReply{Topic: topic, Answer: answer}
}
