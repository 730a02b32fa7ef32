package user

import (
	"baka-api/internal/domain/file"
	"baka-api/internal/domain/link"
	domain "baka-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	return &domain.User{
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

		Files: file.Files{},
		Links: link.Links{},
	}
}

func fromDBModels(models Users) domain.Users {
	us := make(domain.Users, len(models))
	for idx, u := range models {
		us[idx] = fromDBModel(u)
	}

	return us
}

func fileFromDBModel(model *File) (*file.File, error) {
	return file.New(model.UploaderID, file.File{
		ID:             model.ID,
		BackendFileID:  model.BackendFileID,
		ExternalID:     model.ExternalID,
		Filename:       model.FileName,
		Extension:      model.Extension,
		IPUploadedFrom: model.IP,
		Deleted:        model.Deleted,
		SizeMB:         model.SizeMB,
		Timestamp:      model.CreatedAt,
	})
}

func linkFromDBModel(model *Link) (*link.Link, error) {
	return link.New(model.UploaderID, link.Link{
		ID:             model.ID,
		Destination:    model.Destination,
		ExternalID:     model.ExternalID,
		UploadedFromIP: model.IP,
		Deleted:        model.Deleted,
		Timestamp:      model.CreatedAt,
	})
}
