package user

import (
	"fmt"

	"baka-api/internal/domain/file"
	"baka-api/internal/domain/link"
	domain "baka-api/internal/domain/user"
)

func toDBModel(u *domain.User) *User {
	return &User{
		ID:            int64(u.ID),
		Username:      u.Username,
		Name:          u.Name,
		Email:         u.Email,
		Token:         u.Token,
		UploadLimitMB: u.UploadLimitMB,
		CreatedAt:     u.Timestamp,
		InitialIP:     u.InitialIP,
		Deleted:       u.Deleted,
		Disabled:      u.Disabled,
		AccountType:   u.AccountType,
	}
}

func fromDBModel(model *User) (*domain.User, error) {
	u := &domain.User{
		ID:            domain.ID(model.ID),
		Username:      model.Username,
		Name:          model.Name,
		Email:         model.Email,
		Token:         model.Token,
		UploadLimitMB: model.UploadLimitMB,
		Timestamp:     model.CreatedAt,
		InitialIP:     model.InitialIP,
		Deleted:       model.Deleted,
		Disabled:      model.Disabled,
		AccountType:   model.AccountType,

		Files: make(file.Files, 0, len(model.Files)),
		Links: make(link.Links, 0, len(model.Links)),
	}

	for i := range model.Files {
		m := &model.Files[i]
		f, err := file.New(ownerOf(m.UploaderID), file.File{
			ID:             m.ID,
			BackendFileID:  m.BackendFileID,
			ExternalID:     m.ExternalID,
			Filename:       m.FileName,
			Extension:      m.Extension,
			IPUploadedFrom: m.IP,
			Deleted:        m.Deleted,
			SizeMB:         m.SizeMB,
			Timestamp:      m.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("file %d: %w", m.ID, err)
		}
		u.Files = append(u.Files, f)
	}

	for i := range model.Links {
		m := &model.Links[i]
		l, err := link.New(ownerOf(m.UploaderID), link.Link{
			ID:             m.ID,
			Destination:    m.Destination,
			ExternalID:     m.ExternalID,
			UploadedFromIP: m.IP,
			Deleted:        m.Deleted,
			Timestamp:      m.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", m.ID, err)
		}
		u.Links = append(u.Links, l)
	}

	return u, nil
}

func ownerOf(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
