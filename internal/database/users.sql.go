package database

import (
	"context"
)

const createUser = `
INSERT INTO users (username, email, rating)
VALUES ($1, $2, $3)
RETURNING id, username, email, rating, total_contests, total_problems_solved, total_problems_attempted, created_at, updated_at
`

type CreateUserParams struct {
	Username string
	Email    *string
	Rating   int32
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Username, arg.Email, arg.Rating)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.Rating,
		&i.TotalContests,
		&i.TotalProblemsSolved,
		&i.TotalProblemsAttempted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByID = `
SELECT id, username, email, rating, total_contests, total_problems_solved, total_problems_attempted, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int32) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.Rating,
		&i.TotalContests,
		&i.TotalProblemsSolved,
		&i.TotalProblemsAttempted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByUsername = `
SELECT id, username, email, rating, total_contests, total_problems_solved, total_problems_attempted, created_at, updated_at
FROM users
WHERE username = $1
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByUsername, username)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.Rating,
		&i.TotalContests,
		&i.TotalProblemsSolved,
		&i.TotalProblemsAttempted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listUsers = `
SELECT id, username, email, rating, total_contests, total_problems_solved, total_problems_attempted, created_at, updated_at
FROM users
ORDER BY rating DESC, id ASC
LIMIT $1 OFFSET $2
`

type ListUsersParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsers, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []User{}
	for rows.Next() {
		var i User
		if err := rows.Scan(
			&i.ID,
			&i.Username,
			&i.Email,
			&i.Rating,
			&i.TotalContests,
			&i.TotalProblemsSolved,
			&i.TotalProblemsAttempted,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateUserEmail = `
UPDATE users
SET email = $2, updated_at = now()
WHERE id = $1
RETURNING id, username, email, rating, total_contests, total_problems_solved, total_problems_attempted, created_at, updated_at
`

type UpdateUserEmailParams struct {
	ID    int32
	Email *string
}

func (q *Queries) UpdateUserEmail(ctx context.Context, arg UpdateUserEmailParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserEmail, arg.ID, arg.Email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.Rating,
		&i.TotalContests,
		&i.TotalProblemsSolved,
		&i.TotalProblemsAttempted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateUserContestStats = `
UPDATE users
SET rating = $2,
    total_contests = total_contests + 1,
    total_problems_solved = total_problems_solved + $3,
    total_problems_attempted = total_problems_attempted + $4,
    updated_at = now()
WHERE id = $1
RETURNING id, username, email, rating, total_contests, total_problems_solved, total_problems_attempted, created_at, updated_at
`

type UpdateUserContestStatsParams struct {
	ID                int32
	Rating            int32
	ProblemsSolved    int32
	ProblemsAttempted int32
}

func (q *Queries) UpdateUserContestStats(ctx context.Context, arg UpdateUserContestStatsParams) (User, error) {
	row := q.db.QueryRow(
		ctx,
		updateUserContestStats,
		arg.ID,
		arg.Rating,
		arg.ProblemsSolved,
		arg.ProblemsAttempted,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.Rating,
		&i.TotalContests,
		&i.TotalProblemsSolved,
		&i.TotalProblemsAttempted,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteUser = `
DELETE FROM users
WHERE id = $1
`

func (q *Queries) DeleteUser(ctx context.Context, id int32) error {
	_, err := q.db.Exec(ctx, deleteUser, id)
	return err
}

const countUsers = `
SELECT count(*) FROM users
`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countUsers)
	var count int64
	err := row.Scan(&count)
	return count, err
}
