package store

// SchemaSQL defines the template database structure. The live database is
// always a byte-for-byte copy of a template built from this, so runtime
// code never migrates anything: a schema change means a new template and a
// playthrough reset.
const SchemaSQL = `
-- ========================================================
-- 1. METADATA
-- ========================================================
CREATE TABLE MetaData (
    Key   TEXT NOT NULL UNIQUE,
    Value TEXT NOT NULL
);

-- ========================================================
-- 2. STATIC CATALOG
-- ========================================================

CREATE TABLE Maps (
    ID        INTEGER NOT NULL UNIQUE,
    Name      TEXT NOT NULL UNIQUE,
    WorldName TEXT UNIQUE,              -- NULL for the dummy "any map" rows
    PRIMARY KEY(ID AUTOINCREMENT)
);

CREATE TABLE Planets (
    ID   INTEGER NOT NULL UNIQUE,
    Name TEXT NOT NULL UNIQUE,
    PRIMARY KEY(ID AUTOINCREMENT)
);

CREATE TABLE Items (
    ID          INTEGER NOT NULL UNIQUE,
    Name        TEXT NOT NULL UNIQUE,
    Description TEXT NOT NULL,
    Points      INTEGER NOT NULL,
    Balance     TEXT NOT NULL UNIQUE,
    PRIMARY KEY(ID AUTOINCREMENT)
);

-- A (balance, enemy class) pair in here means that drop counts. A NULL
-- enemy class means any world drop of the balance counts.
CREATE TABLE Drops (
    ID          INTEGER NOT NULL UNIQUE,
    ItemBalance TEXT NOT NULL,
    EnemyClass  TEXT,
    ExtraItemPool TEXT,
    PRIMARY KEY(ID AUTOINCREMENT),
    FOREIGN KEY(ItemBalance) REFERENCES Items(Balance),
    UNIQUE(ItemBalance, EnemyClass)
);

-- Pre-joined planet/map/item rows so menu generation is a single query.
CREATE TABLE ItemLocations (
    ID         INTEGER NOT NULL UNIQUE,
    PlanetID   INTEGER NOT NULL,
    PlanetName TEXT NOT NULL,
    MapID      INTEGER NOT NULL,
    MapName    TEXT NOT NULL,
    WorldName  TEXT,
    ItemID     INTEGER NOT NULL,
    PRIMARY KEY(ID AUTOINCREMENT),
    FOREIGN KEY(PlanetID) REFERENCES Planets(ID),
    FOREIGN KEY(MapID) REFERENCES Maps(ID),
    FOREIGN KEY(ItemID) REFERENCES Items(ID),
    UNIQUE(PlanetID, MapID, ItemID) ON CONFLICT IGNORE
);

-- Top level of the menu tree: either a planet or a standalone map per row.
CREATE TABLE OptionsList (
    ID         INTEGER NOT NULL UNIQUE,
    PlanetID   INTEGER UNIQUE,
    PlanetName TEXT UNIQUE,
    MapID      INTEGER UNIQUE,
    MapName    TEXT UNIQUE,
    PRIMARY KEY(ID AUTOINCREMENT),
    FOREIGN KEY(PlanetID) REFERENCES Planets(ID),
    FOREIGN KEY(MapID) REFERENCES Maps(ID),
    CHECK ((PlanetID IS NULL) == (PlanetName IS NULL)),
    CHECK ((MapID IS NULL) == (MapName IS NULL)),
    CHECK ((PlanetID IS NOT NULL) != (MapID IS NOT NULL))
);

CREATE TABLE MissionTokens (
    ID               INTEGER NOT NULL UNIQUE,
    MissionClass     TEXT NOT NULL UNIQUE,
    InitialTokens    INTEGER,
    SubsequentTokens INTEGER,
    PRIMARY KEY(ID AUTOINCREMENT)
);

-- Some legendary balances roll into one of several named items depending
-- on parts. The catalog only stores the specific names, this maps back.
CREATE TABLE ExpandableBalances (
    ID              INTEGER NOT NULL UNIQUE,
    RootBalance     TEXT NOT NULL,
    Part            TEXT NOT NULL,
    ExpandedBalance TEXT NOT NULL,
    PRIMARY KEY(ID AUTOINCREMENT),
    FOREIGN KEY(ExpandedBalance) REFERENCES Items(Balance)
);

-- ========================================================
-- 3. RUNTIME EVENT LOGS (append-only)
-- ========================================================

CREATE TABLE Collected (
    ID          INTEGER NOT NULL UNIQUE,
    ItemID      INTEGER NOT NULL,
    CollectTime TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY(ID AUTOINCREMENT),
    FOREIGN KEY(ItemID) REFERENCES Items(ID)
);
CREATE INDEX CollectedItemIDIndex ON Collected(ItemID);

CREATE TABLE TokenRedeems (
    ID          INTEGER NOT NULL UNIQUE,
    CollectedID INTEGER NOT NULL UNIQUE,
    PRIMARY KEY(ID AUTOINCREMENT),
    FOREIGN KEY(CollectedID) REFERENCES Collected(ID)
);

CREATE TABLE CompletedMissions (
    ID           INTEGER NOT NULL UNIQUE,
    MissionClass TEXT NOT NULL,
    CompleteTime TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY(ID AUTOINCREMENT)
);

-- Deliberately not making map a foreign key, in case anything in our db is
-- wrong and we get something new from the game.
CREATE TABLE SaveQuits (
    ID       INTEGER NOT NULL UNIQUE,
    Map      TEXT NOT NULL,
    Station  TEXT NOT NULL,
    QuitTime TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY(ID AUTOINCREMENT)
);

-- ========================================================
-- 4. VIEWS
-- ========================================================

CREATE VIEW CollectedItems AS
SELECT
    ID,
    Name,
    Description,
    Points,
    Balance,
    (
        SELECT COUNT(*) FROM Collected as c WHERE c.ItemID = i.ID
    ) as NumCollected,
    (
        SELECT CollectTime FROM Collected
        WHERE ItemID = i.ID
        ORDER BY CollectTime ASC
        LIMIT 1
    ) as FirstCollectTime
FROM
    Items as i;

CREATE VIEW CollectedLocations AS
SELECT
    l.ID,
    l.PlanetID,
    l.MapID,
    l.MapName,
    l.ItemID,
    i.Points,
    (
        SELECT COUNT(*) FROM Collected as c WHERE c.ItemID = i.ID
    ) as NumCollected
FROM
    ItemLocations as l
LEFT JOIN
    Items as i ON l.ItemID = i.ID;

-- One baseline token, plus the mission grants, minus every redeem.
CREATE VIEW AvailableTokens AS
SELECT
    (
        IFNULL(SUM(Tokens), 0)
        + 1
        - IFNULL((SELECT COUNT(*) FROM TokenRedeems), 0)
    )
    as Tokens
FROM
(
    SELECT
        CASE COUNT(*)
            WHEN 0 THEN 0
            WHEN 1 THEN t.InitialTokens
            ELSE t.InitialTokens + (t.SubsequentTokens * (COUNT(*) - 1))
        END as Tokens
    FROM
        MissionTokens as t
    INNER JOIN
        CompletedMissions as c ON t.MissionClass = c.MissionClass
    GROUP BY
        t.ID
);
`
