// Package social owns all process-wide state of the backend: the user directory,
// the friend graph, the conversation store and the media registries. One Service is
// built at startup and shared by every request handler; tests build fresh ones.
package social

import (
	"io"
	"path"

	"go.uber.org/zap"

	"social-demo/backend/internal/constants"
	"social-demo/backend/internal/conversation"
	"social-demo/backend/internal/directory"
	"social-demo/backend/internal/graph"
	"social-demo/backend/internal/media"
	"social-demo/backend/internal/state"
	apperrors "social-demo/backend/pkg/errors"
	"social-demo/backend/pkg/logger"
)

// Options configures where uploaded media lives
type Options struct {
	UploadDir         string
	ProfilePictureDir string
	// ProfilePictureSubdir is ProfilePictureDir relative to UploadDir, used for URLs
	ProfilePictureSubdir string
}

// Service is the single owner of the social graph state
type Service struct {
	Directory     *directory.Directory
	Friends       *graph.Repository
	Conversations *conversation.Store
	Videos        *media.VideoRegistry

	pictures *media.BlobStore
	logger   *zap.Logger
}

// NewService wires the components leaf-first
func NewService(opts Options, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = logger.Get()
	}

	videoBlobs, err := media.NewBlobStore(opts.UploadDir, constants.UploadsURLPrefix, log)
	if err != nil {
		return nil, err
	}
	pictureBlobs, err := media.NewBlobStore(opts.ProfilePictureDir,
		path.Join(constants.UploadsURLPrefix, opts.ProfilePictureSubdir), log)
	if err != nil {
		return nil, err
	}

	dir := directory.New(log)
	friends := graph.NewRepository(dir, log)

	return &Service{
		Directory:     dir,
		Friends:       friends,
		Conversations: conversation.NewStore(friends, log),
		Videos:        media.NewVideoRegistry(videoBlobs),
		pictures:      pictureBlobs,
		logger:        log,
	}, nil
}

// Register creates a profile
func (s *Service) Register(name, email, password string) (state.Profile, error) {
	return s.Directory.Register(directory.RegisterInput{Name: name, Email: email, Password: password})
}

// Login checks plaintext credentials
func (s *Service) Login(email, password string) (state.Profile, error) {
	return s.Directory.Authenticate(email, password)
}

// AddFriend links two existing, distinct, not yet linked users
func (s *Service) AddFriend(userEmail, friendEmail string) error {
	_, err := s.Friends.AddFriend(userEmail, friendEmail)
	return err
}

// ListFriends returns the profiles of user's friends
func (s *Service) ListFriends(userEmail string) []state.Profile {
	return s.Friends.ListFriends(userEmail)
}

// SendMessage stores a message between friends
func (s *Service) SendMessage(fromEmail, toEmail, body string) (state.Message, error) {
	return s.Conversations.SendMessage(fromEmail, toEmail, body)
}

// GetConversation returns the ordered messages between two users
func (s *Service) GetConversation(user1, user2 string) []state.Message {
	return s.Conversations.GetConversation(user1, user2)
}

// UploadVideo stores and registers a video
func (s *Service) UploadVideo(title, originalName string, r io.Reader) (state.Video, error) {
	return s.Videos.Upload(title, originalName, r)
}

// UploadProfilePicture stores a picture and attaches it to the profile of email.
// The file is removed again if the profile does not exist.
func (s *Service) UploadProfilePicture(email, originalName string, r io.Reader) (*media.StoredFile, error) {
	if _, ok := s.Directory.FindByEmail(email); !ok {
		return nil, apperrors.NewUserNotFound(email)
	}

	stored, err := s.pictures.Save(constants.ProfilePicturePrefix, originalName, r)
	if err != nil {
		return nil, err
	}

	if err := s.Directory.SetProfilePicture(email, stored.URL); err != nil {
		if rmErr := s.pictures.Remove(stored); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned profile picture", zap.Error(rmErr))
		}
		return nil, err
	}
	return stored, nil
}
