// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dump serializes database snapshots.

JSON files round-trip through WriteJSON and ReadJSON and feed
store.ReplaceAll. WriteSQL produces a plain insert script that loads into
either dialect:

	DELETE FROM appointment;
	...
	DELETE FROM users;

	-- users
	INSERT INTO users (user_id, email, ...) VALUES (1, 'a@example.com', ..., NULL, 'secret');
*/
package dump
