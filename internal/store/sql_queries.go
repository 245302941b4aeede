package store

const (
	createUser = `INSERT INTO users (login, password_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`

	createNote = `INSERT INTO notes (id, user_id, title, content, summary, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
    RETURNING id, user_id, title, content, summary, created_at, updated_at;`

	getNote = `SELECT id, user_id, title, content, summary, created_at, updated_at
    FROM notes
    WHERE user_id = $1 AND id = $2;`

	updateNote = `UPDATE notes
    SET title = $3, content = $4, summary = $5, updated_at = NOW()
    WHERE user_id = $1 AND id = $2
    RETURNING id, user_id, title, content, summary, created_at, updated_at;`

	deleteNote = `DELETE FROM notes
    WHERE user_id = $1 AND id = $2;`
)
