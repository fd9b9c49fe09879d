// services/chat_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"gorm.io/gorm"
)

type ChatService struct {
	Repo     *repository.ChatRepository
	UserRepo *repository.UserRepository
}

func NewChatService(repo *repository.ChatRepository, userRepo *repository.UserRepository) *ChatService {
	return &ChatService{Repo: repo, UserRepo: userRepo}
}

// resolvePair orients (caller, peer) into the canonical (owner, mechanic)
// pair a conversation is keyed by.
func (s *ChatService) resolvePair(callerID uint, callerRole string, peerID uint) (userID, mechanicID uint, err error) {
	peer, err := s.UserRepo.FindByID(peerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, fmt.Errorf("%w: peer not found", ErrNotFound)
	}
	if err != nil {
		return 0, 0, err
	}
	if peer.Role == callerRole {
		return 0, 0, fmt.Errorf("%w: chat runs between a user and a mechanic", ErrValidation)
	}
	if callerRole == "mechanic" {
		return peerID, callerID, nil
	}
	return callerID, peerID, nil
}

// Pair exposes the canonical orientation for callers outside the service,
// the websocket hub keys its rooms by it.
func (s *ChatService) Pair(callerID uint, callerRole string, peerID uint) (userID, mechanicID uint, err error) {
	return s.resolvePair(callerID, callerRole, peerID)
}

func (s *ChatService) Send(callerID uint, callerRole string, peerID uint, text string) (*entity.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty message", ErrValidation)
	}
	userID, mechanicID, err := s.resolvePair(callerID, callerRole, peerID)
	if err != nil {
		return nil, err
	}
	msg := &entity.ChatMessage{
		UserID:     userID,
		MechanicID: mechanicID,
		FromID:     callerID,
		Text:       text,
	}
	if err := s.Repo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatService) Thread(callerID uint, callerRole string, peerID uint) ([]entity.ChatMessage, error) {
	userID, mechanicID, err := s.resolvePair(callerID, callerRole, peerID)
	if err != nil {
		return nil, err
	}
	return s.Repo.Thread(userID, mechanicID)
}

// Conversation is one chat partner plus the latest message exchanged.
type Conversation struct {
	PeerID   uint   `json:"peerId"`
	PeerName string `json:"peerName"`
	LastText string `json:"lastText"`
	LastAt   string `json:"lastAt"`
}

// Conversations folds the caller's recent messages into one row per partner,
// newest first.
func (s *ChatService) Conversations(callerID uint, callerRole string) ([]Conversation, error) {
	var msgs []entity.ChatMessage
	var err error
	if callerRole == "mechanic" {
		msgs, err = s.Repo.RecentForMechanic(callerID, 200)
	} else {
		msgs, err = s.Repo.RecentForUser(callerID, 200)
	}
	if err != nil {
		return nil, err
	}

	seen := map[uint]bool{}
	out := []Conversation{}
	for _, m := range msgs {
		peerID := m.UserID
		if callerRole != "mechanic" {
			peerID = m.MechanicID
		}
		if seen[peerID] {
			continue
		}
		seen[peerID] = true

		name := ""
		if peer, err := s.UserRepo.FindByID(peerID); err == nil {
			name = strings.TrimSpace(peer.FirstName + " " + peer.LastName)
			if name == "" {
				name = peer.Username
			}
		}
		out = append(out, Conversation{
			PeerID:   peerID,
			PeerName: name,
			LastText: m.Text,
			LastAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out, nil
}
