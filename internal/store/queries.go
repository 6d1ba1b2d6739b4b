package store

// Profile queries.
const (
	queryInsertProfile = `
		INSERT INTO farm_profiles (name, farm)
		VALUES (@name, @farm)
		RETURNING id, created_at, updated_at`

	queryGetProfile = `
		SELECT id, name, farm, created_at, updated_at
		FROM farm_profiles
		WHERE id = $1`

	queryUpdateProfile = `
		UPDATE farm_profiles SET
			name = @name,
			farm = @farm,
			updated_at = now()
		WHERE id = @id
		RETURNING created_at, updated_at`

	queryDeleteProfile = `DELETE FROM farm_profiles WHERE id = $1`
)

// History queries.
const (
	queryInsertHistory = `
		INSERT INTO recommendation_history
			(profile_id, fingerprint, source, failure_kind, attempts, result)
		VALUES
			(@profile_id, @fingerprint, @source, @failure_kind, @attempts, @result)
		RETURNING id, created_at`

	queryListHistory = `
		SELECT id, profile_id, fingerprint, source, COALESCE(failure_kind, ''),
			attempts, result, created_at
		FROM recommendation_history
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	queryPruneHistory = `DELETE FROM recommendation_history WHERE created_at < $1`
)
