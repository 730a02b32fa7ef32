package user

const userColumns = `id, username, name, email, token, upload_limit_mb, created_at, initial_ip, deleted, disabled, account_type`

const (
	SelectUsers = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`
	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	SelectUserByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		ORDER BY id
		LIMIT 1
	`
	SelectUserByToken = `
		SELECT ` + userColumns + `
		FROM users
		WHERE token = $1
	`
	SelectUserByTokenForUpdate = `
		SELECT ` + userColumns + `
		FROM users
		WHERE token = $1
		FOR UPDATE
	`
	InsertUser = `
		INSERT INTO users (username, name, email, token, upload_limit_mb, created_at, initial_ip, deleted, disabled, account_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns
	DeleteUserByToken = `
		DELETE FROM users
		WHERE token = $1
		RETURNING ` + userColumns
	SoftDeleteUserByToken = `
		UPDATE users
		SET deleted = TRUE
		WHERE token = $1
		RETURNING ` + userColumns
	DisableUserByToken = `
		UPDATE users
		SET disabled = TRUE
		WHERE token = $1
		RETURNING ` + userColumns
	UpdateTokenByID = `
		UPDATE users
		SET token = $1
		WHERE id = $2
		RETURNING ` + userColumns

	SelectFilesByUploaders = `
		SELECT id, backend_file_id, external_id, file_name, extension, ip, deleted, size_mb, created_at, uploader_id
		FROM files
		WHERE uploader_id = ANY($1)
		ORDER BY id
	`
	SelectLinksByUploaders = `
		SELECT id, destination, external_id, ip, deleted, created_at, uploader_id
		FROM links
		WHERE uploader_id = ANY($1)
		ORDER BY id
	`
)
